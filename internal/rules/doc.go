// Package rules implements the gas-optimization checks and the tip
// catalog they report against.
//
// # Purpose
//
// This package turns the 31-tip gas-optimization catalog into executable
// checks. Each rule inspects one parsed Solidity file and reports
// findings with a source location, an estimated gas saving, and the
// catalog tip's remediation text.
//
// # Design Philosophy
//
// The package follows a modular rule pattern where each check is
// implemented as a separate Rule. This design was chosen because:
//  1. Each tip has unique detection logic over the parsed source
//  2. Enables selective scanning based on configuration
//  3. Makes it easy to add new rules without modifying existing code
//  4. Simplifies testing of individual checks
//
// Rules are conservative: when a pattern cannot be confirmed from the
// shallow parse (unknown types, unparseable pragma, inherited state),
// the rule stays quiet. A missed finding costs nothing; a wrong finding
// costs trust.
//
// # Severity
//
// Rules never pick severities. Each finding carries an estimated
// per-occurrence gas saving and the severity is derived from that
// estimate's band: storage-slot class savings rank Critical, cold-access
// class High, warm-access class Medium, anything smaller Low, and
// advisory findings with no defensible estimate rank Info.
//
// # Usage
//
//	registry := rules.NewRegistry()
//	findings, err := registry.Run(ctx, file)
package rules
