package signature

import "github.com/inoxlang/ctxcompletion/internal/moduleid"

// qualifiedReference is an occurrence of org/package:version: in a text, the text following the
// qualifier (usually a type name) is not part of the reference.
type qualifiedReference struct {
	start        int //index of the first character of the organization
	qualifierEnd int //index following the ':' after the version

	org         string
	packageName string
	version     string
}

type scanState int

const (
	inPackageName scanState = iota
	inVersion
)

// findQualifiedReference returns the leftmost qualified reference starting at or after from.
// Each '/' is a candidate: the organization is the run of identifier characters preceding it, then the
// scanner goes through the package name and the version up to the following ':'. A failed candidate
// does not consume anything, the search continues at the next '/'.
func findQualifiedReference(text string, from int) (qualifiedReference, bool) {
	for slash := from; slash < len(text); slash++ {
		if text[slash] != ORG_SEPARATOR {
			continue
		}

		orgStart := slash
		for orgStart > from && isIdentByte(text[orgStart-1]) {
			orgStart--
		}
		if orgStart == slash { //empty organization
			continue
		}

		ref, ok := scanAfterOrganization(text, slash+1)
		if !ok {
			continue
		}
		ref.start = orgStart
		ref.org = text[orgStart:slash]
		return ref, true
	}

	return qualifiedReference{}, false
}

func scanAfterOrganization(text string, packageStart int) (qualifiedReference, bool) {
	var ref qualifiedReference

	state := inPackageName
	segmentStart := packageStart

	for i := packageStart; ; i++ {
		var c byte
		atEnd := i >= len(text)
		if !atEnd {
			c = text[i]
		}

		switch state {
		case inPackageName:
			switch {
			case !atEnd && (isIdentByte(c) || c == '.'):
			case !atEnd && c == MODULE_SEPARATOR && i > segmentStart:
				ref.packageName = text[segmentStart:i]
				state = inVersion
				segmentStart = i + 1
			default:
				return qualifiedReference{}, false
			}
		case inVersion:
			switch {
			case !atEnd && (isDigitByte(c) || c == '.'):
			case !atEnd && c == MODULE_SEPARATOR && i > segmentStart:
				ref.version = text[segmentStart:i]
				ref.qualifierEnd = i + 1
				return ref, true
			default:
				return qualifiedReference{}, false
			}
		}
	}
}

func isIdentByte(c byte) bool {
	return c < 0x80 && moduleid.IsIdentChar(rune(c))
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}
