// Package schedule cross-validates whole crontab expressions against an
// independent cron parser. It only answers "does this expression parse";
// computing run times is out of scope for this server.
package schedule
