// Package fintrack keeps a personal ledger of financial records and of the
// plans that forecast future ones.
//
// The core types are:
//   - Record: an amount, a description, a timestamp and a unique identifier.
//   - PlannedRecord: an amount and description repeated on a schedule, like
//     "every other week on friday", expanded into records on demand.
//   - Sheet: a collection of one kind of entry kept sorted by timestamp, or by
//     next occurrence for plans.
//   - Extract, Combined and Balanced: live views over sheets, to select records
//     within bounds, merge several sources, or add a running balance.
//
// A Book persists named sheets in a folder, as a config.yaml file and one
// JSON file per sheet, human readable and version-control friendly.
//
// Amounts and dates typed by users are read according to process-wide
// Settings, see Configure.
package fintrack
