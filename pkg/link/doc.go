// Package link parses and rewrites the [[link]] markup embedded in passage text.
//
// # Syntax
//
// A link token opens with "[[" and closes at the first following "]]" on the
// same line. An unmatched "[[" is plain text. Inside the brackets an optional
// setter block starts at the first "][" and runs to the closing brackets:
//
//	[[Target][$visited = true]]
//
// The setter never contributes to the target and is kept byte-for-byte when a
// token is rewritten. The rest of the token is read in one of three forms,
// tried in order:
//
//	[[Go north->North Road]]   arrow: rightmost "->", target on the right
//	[[North Road<-Go north]]   arrow: leftmost "<-", target on the left
//	[[Go north|North Road]]    pipe:  exactly one "|", target on the right
//	[[North Road]]             bare:  the whole content is the target
//
// Picking the rightmost "->" and the leftmost "<-" lets display text itself
// contain arrows: [[a->b->C]] shows "a->b" and links to "C".
//
// # Extraction and rewriting
//
// [Parse] scans the text once and returns every token with its byte span.
// [Links] resolves those tokens to unique targets in first-seen order, and
// [Replace] retargets tokens by exact string match. Target names are treated as
// opaque literals; nothing is compiled into a pattern, so names containing
// regexp metacharacters behave like any other name.
package link
