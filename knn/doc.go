// Package knn clusters values that lie within a distance radius of each
// other.
//
// Comparisons are restricted to pairs sharing at least one n-gram, as
// reported by a blocking.Index. Every compared pair within the radius becomes
// an edge, and clusters are the connected components of the resulting graph.
// Chaining is intended: a and c end up together when both are close to b,
// even if a and c are far apart.
package knn
