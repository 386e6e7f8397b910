/*
Package config loads the optional settings file for emojifix.

Without a file the defaults walk the current directory for **\/*.html with
the tag-aware matcher. A file is only read when its path is passed
explicitly; there is no lookup and no environment override.

Formats are picked by extension:
  - .yaml / .yml (unknown keys rejected)
  - .hcl
  - .json (unknown keys rejected)

🔍 Example (.emojifix.yaml):

	root: public
	ignore:
	  - "drafts/**"
	matcher: tag
	backup: true
*/
package config
