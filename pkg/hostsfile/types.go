// Package hostsfile parses /etc/hosts style files into classified lines.
package hostsfile

// Kind classifies a parsed line.
type Kind string

const (
	KindBlank   Kind = "blank"
	KindComment Kind = "comment"
	KindEntry   Kind = "entry"
)

// Line is one parsed line of a hosts file.
// Optional fields are nil when the line does not carry them.
type Line struct {
	// Raw is the original line content, including any surrounding whitespace.
	Raw string `json:"raw"`

	// IP is the first space-delimited token before any comment.
	// Set only for host entries.
	IP *string `json:"ip,omitempty"`

	// Hosts is the second space-delimited token before any comment.
	Hosts *string `json:"hosts,omitempty"`

	// Comment is the text after the first '#'. For comment-only lines it
	// holds the whole trimmed line, '#' included.
	Comment *string `json:"comment,omitempty"`
}

// ContainsHost reports whether the line is a host entry.
func (l Line) ContainsHost() bool {
	return l.IP != nil
}

// Kind returns the classification of the line.
func (l Line) Kind() Kind {
	switch {
	case l.IP != nil:
		return KindEntry
	case l.Comment != nil:
		return KindComment
	default:
		return KindBlank
	}
}

// String returns the raw line.
func (l Line) String() string {
	return l.Raw
}

// IPValue returns the IP or "" when absent.
func (l Line) IPValue() string { return deref(l.IP) }

// HostsValue returns the hosts field or "" when absent.
func (l Line) HostsValue() string { return deref(l.Hosts) }

// CommentValue returns the comment or "" when absent.
func (l Line) CommentValue() string { return deref(l.Comment) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// File is a parsed hosts file.
type File struct {
	// Source is the path the content was read from.
	Source string

	// Lines holds one entry per input line, in input order.
	Lines []Line
}

// Entries returns the lines that contain a host.
func (f *File) Entries() []Line {
	var entries []Line
	for _, l := range f.Lines {
		if l.ContainsHost() {
			entries = append(entries, l)
		}
	}
	return entries
}
