package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PlantParams defines the panel installation and the household draw.
// Units:
// - EfficiencyCoefficient: 0..1
// - PanelAreaM2: m²
// - TargetDayWh, TargetNightWh: Wh consumed per day (daytime / overnight share)
type PlantParams struct {
	EfficiencyCoefficient float64
	PanelAreaM2           float64
	TargetDayWh           float64
	TargetNightWh         float64
}

// TargetWh is the total daily consumption.
func (p PlantParams) TargetWh() float64 {
	return p.TargetDayWh + p.TargetNightWh
}

// YieldWh converts a daily irradiation sum (Wh/m²) into generated energy.
func (p PlantParams) YieldWh(irradianceWhM2 float64) float64 {
	return irradianceWhM2 * p.PanelAreaM2 * p.EfficiencyCoefficient
}

func (p PlantParams) Validate() error {
	if p.EfficiencyCoefficient <= 0 || p.EfficiencyCoefficient > 1 {
		return errors.New("EfficiencyCoefficient must be in (0, 1]")
	}
	if p.PanelAreaM2 <= 0 {
		return errors.New("PanelAreaM2 must be > 0")
	}
	if p.TargetDayWh < 0 || p.TargetNightWh < 0 {
		return errors.New("TargetDayWh/TargetNightWh must be >= 0")
	}
	return nil
}

// Prices are per kWh in the local currency.
type Prices struct {
	SellPerKWh float64
	BuyPerKWh  float64
}

func (p Prices) Validate() error {
	if p.SellPerKWh < 0 {
		return errors.New("SellPerKWh must be >= 0")
	}
	if p.BuyPerKWh < 0 {
		return errors.New("BuyPerKWh must be >= 0")
	}
	return nil
}

var whPerKWh = decimal.NewFromInt(1000)

// Value prices exported excess at the sell tariff and covered consumption
// at the buy tariff.
func (p Prices) Value(excessWh, savingsWh float64) decimal.Decimal {
	sold := decimal.NewFromFloat(excessWh).Div(whPerKWh).Mul(decimal.NewFromFloat(p.SellPerKWh))
	saved := decimal.NewFromFloat(savingsWh).Div(whPerKWh).Mul(decimal.NewFromFloat(p.BuyPerKWh))
	return sold.Add(saved)
}
