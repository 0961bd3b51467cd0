// Package purse is the core of a personal wallet holding a cash balance in a
// West African currency and a few crypto assets.
//
// The core functionalities include:
//   - Ledger: deposits, cash withdrawals and bill payments, each recorded as
//     an immutable transaction, newest first, with the balance they summarize.
//   - Trading: buying, selling and sending crypto at the price of a Quoter,
//     settled in the account currency at a fixed exchange rate.
//   - Recurring payments: recorded with a frequency and a start date. They are
//     never executed automatically.
//   - Sessions: a Wallet opens a Session per login. All sessions of a user
//     share one state guarded by a mutex, and every accepted operation is
//     saved through a Store.
//
// Ledger and Trader are stateless: they apply one operation to the UserState
// they are given, entirely or not at all. Session does the locking and
// persistence around them.
//
// This package serves as the foundational logic for the `purse` command-line
// tool.
package purse
