// Package dds computes double-dummy analysis for bridge deals.
//
// The Adapter normalises any Backend (the in-process exact solver or a
// remote HTTP service) into a validated 5x4 trick table, and derives the
// par contract and the Law-of-Total-Tricks statistic from it. Tables that
// violate the defender-symmetry invariant are rejected after one retry.
package dds
