// Package distance provides the point distance used for centroid assignment.
//
// Points are float64 slices of equal length; mismatched lengths panic, as
// in gonum's floats package which backs these functions.
package distance
