// Package capture provides the audio sources feeding the analyzer: live
// microphone input via PortAudio, WAV file playback, and a deterministic
// synthetic signal for hardware-free runs.
//
// All sources deliver mono []float64 blocks on a small channel with
// drop-oldest overrun handling, so a consumer that falls behind always
// resumes with the most recent audio instead of a growing backlog.
package capture
