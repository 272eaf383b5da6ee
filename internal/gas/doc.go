// Package gas holds the EVM gas schedule constants gaslint uses to turn
// matched patterns into estimated savings.
//
// The values follow the post-Berlin/London schedule (EIP-2929 access costs,
// EIP-3529 refunds). They are estimation inputs, not a gas meter: the linter
// reports "fixing this saves roughly N gas per occurrence", and N comes from
// these constants so every figure in a report can be traced to the schedule.
package gas
