/*
Package status owns the file system side of a correction run and the
wording of per-file outcomes.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+------+
	|  Manager  |           | Formatter |
	|  (files)  |           |  (lines)  |
	+-----------+           +-----------+

🎯 Purpose:
- Reads files as UTF-8 and rejects anything that does not decode
- Writes corrected files atomically (temp file + rename), keeping permissions
- Optionally keeps a .bak copy of the original
- Names the outcome of each file (corrected, unchanged, failed)

🔍 Example:

	mgr := status.New(root, logger)

	content, err := mgr.ReadFile(ctx, "index.html")

	err = mgr.WriteFileAtomic(ctx, "index.html", corrected)

	line := status.NewDefaultFileFormatter().FormatFileOperation(status.FileInfo{
		Path:   "index.html",
		Status: status.StatusCorrected,
	})
*/
package status
