// Package analyzer converts streaming time-domain audio into per-band
// amplitude frames for visualization.
//
// Samples are accumulated in a ring buffer; every hop an overlapped,
// windowed FFT frame is taken and the single-sided magnitude spectrum is
// aggregated into a fixed number of frequency bands by arithmetic mean.
// Band amplitudes are raw (not normalized to any display range); see the
// normalize package for history-based range adaptation.
package analyzer
