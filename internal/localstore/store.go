// Package localstore provides whole-value keyed stores backing the local
// plan-history cache. All implementations share the same contract: a value
// is read and written in full under a single key, and an absent key yields
// common.ErrorNotFound.
package localstore
