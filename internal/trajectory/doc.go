// Package trajectory provides the sinks that receive (t, y) records from an
// integration run.
//
//   - [Memory]: keeps the whole [Trajectory] in memory
//   - [Text]: the plain table format "t, y0, y1, ..." on any io.Writer
//   - [CSV]: RFC 4180 rows through encoding/csv
//   - [SQLite]: one row per component in a caller-owned database
//   - [Tee]: fans a record out to several sinks
//
// Every sink satisfies [dynamo.Sink]. Sinks do not retain the vectors they
// are handed unless they copy them.
package trajectory
