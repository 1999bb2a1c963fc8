// Package clinical derives interpretable physiological metrics from fitted
// Frank-Starling curve parameters: cardiac reserve, the preload sensitivity
// category, and advisory flags. Everything here is a pure function of its
// inputs with no failure modes.
package clinical
