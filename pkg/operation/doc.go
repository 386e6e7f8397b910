/*
Package operation walks a directory tree and applies the emoji corrector to
every matching file.

	+-------------+
	|   Walker    |
	| (discover)  |
	+------+------+
	       |
	+------+------+
	|  Corrector  |
	| (transform) |
	+------+------+
	       |
	+------+------+
	|   Status    |
	|  (storage)  |
	+-------------+

🔄 Flow:
1. Globs the root with doublestar (default **\/*.html), drops ignored paths
2. Prints the full file list before touching anything
3. Reads, corrects and writes back one file at a time
4. Records failures per file and keeps going
5. Prints a summary with the number of modified files

Processing is strictly sequential. The Summary is a local accumulator
returned by Run; nothing survives between runs.
*/
package operation
