package thunderbird

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Folder is a local or server mail folder referenced by a
// mailbox://user@host[:port]/path locator.
type Folder struct {
	Host  string
	Port  int // 0 when absent
	User  string
	Names []string
}

// Path joins the decoded segments with "/", the form label paths use.
func (f Folder) Path() string {
	return strings.Join(f.Names, "/")
}

func (f Folder) String() string {
	return strings.Join(f.Names, " / ")
}

// ParseFolder parses a mailbox:// locator. Thunderbird percent-encodes the
// host ("Local%20Folders"), which net/url rejects, so the authority is split
// by hand.
func ParseFolder(value string) (Folder, error) {
	if value == "" {
		return Folder{}, fmt.Errorf("%w: missing folder", ErrMissingArgument)
	}
	const scheme = "mailbox://"
	if !hasPrefixFold(value, scheme) {
		return Folder{}, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidFolder, value)
	}
	rest := value[len(scheme):]
	if strings.Contains(rest, "?") {
		return Folder{}, fmt.Errorf("%w: query string in %q", ErrInvalidFolder, value)
	}
	if strings.Contains(rest, "#") {
		return Folder{}, fmt.Errorf("%w: fragment in %q", ErrInvalidFolder, value)
	}

	authority, path := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		authority, path = rest[:i], rest[i:]
	}
	if !strings.HasPrefix(path, "/") {
		return Folder{}, fmt.Errorf("%w: folder path must be absolute in %q", ErrInvalidFolder, value)
	}

	var f Folder
	hostport := authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		userinfo := authority[:i]
		hostport = authority[i+1:]
		if user, password, found := strings.Cut(userinfo, ":"); found {
			if password != "" {
				return Folder{}, fmt.Errorf("%w: password in %q", ErrInvalidFolder, value)
			}
			userinfo = user
		}
		f.User = decodeSegment(userinfo)
	}
	if i := strings.LastIndexByte(hostport, ':'); i >= 0 {
		if p := hostport[i+1:]; p != "" {
			port, err := strconv.Atoi(p)
			if err != nil || port < 0 || port > 65535 {
				return Folder{}, fmt.Errorf("%w: bad port in %q", ErrInvalidFolder, value)
			}
			f.Port = port
		}
		hostport = hostport[:i]
	}
	f.Host = decodeSegment(hostport)

	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Folder{}, fmt.Errorf("%w: empty folder path in %q", ErrInvalidFolder, value)
	}
	for _, seg := range strings.Split(trimmed, "/") {
		f.Names = append(f.Names, decodeSegment(seg))
	}
	return f, nil
}

func decodeSegment(s string) string {
	if d, err := url.PathUnescape(s); err == nil {
		return d
	}
	return s
}
