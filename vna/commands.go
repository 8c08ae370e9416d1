package vna

import (
	"fmt"
	"strconv"
)

// SCPI command surface of the Agilent E8363B. These are bit-exact for
// interoperability with the physical instrument.
const (
	cmdFullPreset    = "SYSTEM:FPRESET"
	cmdContinuousOff = "INITIATE:CONTINUOUS OFF"
	cmdTriggerManual = "TRIGGER:SOURCE MANUAL"
	cmdSweepHold     = "SENSE1:SWEEP:MODE HOLD"
	cmdAverageOff    = "SENSE1:AVERAGE OFF"
	cmdSweepLinear   = "SENSE1:SWEEP:TYPE LINEAR"
	cmdDisplayOn     = "DISPLAY:VISIBLE ON"
	cmdDisplayOff    = "DISPLAY:VISIBLE OFF"
	cmdTriggerSweep  = "INIT:IMM"
	cmdOpComplete    = "*OPC?"
	cmdDataQuery     = "CALCULATE:DATA? SDATA"
	cmdReset         = "*RST"
	cmdIdentify      = "*IDN?"
)

// settingQueries maps each tunable setting to its bare query; discovery
// appends " MIN" and " MAX" to obtain the advertised range.
var settingQueries = map[Setting]string{
	SettingNumPoints: "SENSE1:SWEEP:POINTS?",
	SettingIFBW:      "SENSE1:BANDWIDTH?",
	SettingFreqStart: "SENSE1:FREQUENCY:START?",
	SettingFreqStop:  "SENSE1:FREQUENCY:STOP?",
	SettingPower:     "SOURCE1:POWER1?",
}

func cmdDefineParam(p SParam) string {
	return fmt.Sprintf("CALCULATE1:PARAMETER:DEFINE '%s', %s", p.measName(), p)
}

func cmdSelectParam(p SParam) string {
	return fmt.Sprintf("CALCULATE1:PARAMETER:SELECT '%s'", p.measName())
}

func cmdSetPoints(n int) string {
	return "SENSE1:SWEEP:POINTS " + strconv.Itoa(n)
}

func cmdSetBandwidth(hz float64) string {
	return "SENSE1:BANDWIDTH " + formatFloat(hz)
}

func cmdSetFreqStart(hz float64) string {
	return "SENSE1:FREQUENCY:START " + formatFloat(hz)
}

func cmdSetFreqStop(hz float64) string {
	return "SENSE1:FREQUENCY:STOP " + formatFloat(hz)
}

// The manual documents a different syntax for source power, but this is the
// form the previous control software used and the hardware accepts.
func cmdSetPower(dbm float64) string {
	return "SOURCE1:POWER1 " + formatFloat(dbm) + "DBM"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
