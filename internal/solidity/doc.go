// Package solidity provides a lightweight frontend for Solidity source:
// a lexer, a declaration-level parser, storage-layout arithmetic, function
// selector computation, and pragma version handling.
//
// The parser is deliberately shallow. It recovers the declarations rules
// care about (contracts, state variables, functions with their attributes,
// structs, events, errors) and keeps function bodies as token slices with
// loop and unchecked-block spans extracted. Rules do token-level matching
// inside bodies rather than walking a full expression tree.
//
// Design decision: We parse to declaration granularity rather than a full
// AST because:
//  1. Every shipped rule matches on declarations plus token patterns
//  2. A tolerant shallow parser survives real-world contracts that a strict
//     grammar would reject
//  3. Files that fail to parse degrade to a per-file error, never a crash
package solidity
