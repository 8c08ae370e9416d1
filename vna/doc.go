// Package vna provides the controller for an Agilent E8363B PNA network
// analyzer driven over a SCPI instrument session.
//
// The analyzer is a stateful, slow piece of hardware whose command ordering
// matters: the controller sequences it through range discovery, measurement
// configuration, repeated trigger/collect cycles, and a reset at teardown.
// Both the discovery and the initialization sequences are fixed ordered
// protocols; reordering them yields invalid range data or garbage
// measurements.
//
// Typical use:
//
//	sess, err := visa.Open("TCPIP0::192.168.0.10::5025::SOCKET")
//	// ... handle error ...
//	analyzer, err := vna.New(sess)
//	// ... handle error ...
//	defer analyzer.Close()
//
//	cfg := vna.Config{
//	    FreqStart: 1e9,
//	    FreqStop:  2e9,
//	    NumPoints: 201,
//	    IFBW:      1000,
//	    Power:     -10,
//	    SParams:   []vna.SParam{vna.S11, vna.S21},
//	}
//	if err := analyzer.Initialize(cfg); err != nil {
//	    // ... handle error ...
//	}
//
//	result, err := analyzer.Fire()
//	// result[vna.S11] holds the raw SDATA payload for S11
package vna
