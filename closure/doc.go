// Package closure computes, per relation, a boolean reachability matrix
// over a trace graph's event nodes (C2).
//
// Two strategies are offered, selected by config.Config.WarshallClosure:
// ComputeWarshall (iterative, bit-packed, deterministic k→i→j loop order)
// and ComputeRecursive (depth-first marking from each source). Both
// return a Matrix answering IsReachable(u, v) in O(1); both are built
// once per mining run and discarded — nothing here is cached across
// runs, per the spec's resource model.
package closure
