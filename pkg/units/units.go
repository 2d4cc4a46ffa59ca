// Package units converts measured speeds to the unit shown to the user
package units

import "github.com/chenBenjamin97/tennis-analyzer/pkg/utils"

const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph" //same as KMPH
)

const mpsToMph = 2.2369362920544

//ValidUnits are the accepted values of 'analysis.speed_unit'
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

func IsValid(unit string) bool {
	return utils.InSlice(unit, ValidUnits)
}

//ConvertSpeed converts speedMPS (meters per second) to unit, anything unknown stays in m/s
func ConvertSpeed(speedMPS float64, unit string) float64 {
	switch unit {
	case MPH:
		return speedMPS * mpsToMph
	case KMPH, KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}

//Speed returns the speed of covering meters in seconds, in unit
func Speed(meters, seconds float64, unit string) float64 {
	return ConvertSpeed(meters/seconds, unit)
}

//Label returns how unit is written on the stats board
func Label(unit string) string {
	switch unit {
	case MPH:
		return "mph"
	case KMPH, KPH:
		return "km/h"
	default:
		return "m/s"
	}
}
