// Package commands defines the avis CLI.
//
// Commands
//
//   - run      Capture audio, analyze it, and stream frames to the matrix
//   - devices  List audio input devices and serial ports
//   - probe    Analyze a WAV file offline and print the first frames
//   - windows  List supported analysis window functions
//
// The root command builds a shared zap logger (stderr, so the terminal
// preview on stdout stays intact) before any subcommand runs.
package commands
