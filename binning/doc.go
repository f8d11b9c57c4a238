// Package binning groups values whose keys are exactly equal.
//
// Keys are computed by a bound keyer function. Each group holding at least two
// distinct strings becomes a cluster. Values whose key is empty never
// cluster, since the keyer stripped everything they contained.
package binning
