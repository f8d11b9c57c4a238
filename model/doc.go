// Package model defines the value and cluster types shared by the keyers,
// clusterers and collectors.
//
// # Input Types
//
//   - RawValue: an original string, its occurrence count and opaque row references
//
// # Output Types
//
//   - Entry: one member of a cluster ({"v": value, "c": count} on the wire)
//   - Cluster: an ordered group of at least two distinct values
//   - Result: the ordered clusters of one run
//
// Results are built with NewCluster and ordered with Sort:
//
//	res := model.Result{model.NewCluster(members)}
//	res.Sort()
package model
