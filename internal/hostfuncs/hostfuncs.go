// Package hostfuncs registers the host-supplied functions spec.md §6
// names as examples of "extra built-ins": sanitize, sanitize_plex_episode,
// to_date_metadata, truncate_filepath_if_too_long, and to_native_filepath.
// They are ordinary builtins.FuncInfo entries, registered against the same
// Registry type the core uses (spec.md §9: no semantic distinction between
// a built-in and a host-registered function once installed), so a host
// calls Register on the same registry it parses and evaluates with.
package hostfuncs

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// Register installs every host function into r.
func Register(r *builtins.Registry) {
	registerSanitize(r)
	registerToDateMetadata(r)
	registerFilepathHelpers(r)
}

// illegalFilenameChars mirrors yt-dlp's sanitize_filename: characters that
// are illegal (or awkward) on at least one of Windows/macOS/Linux.
var illegalFilenameChars = regexp.MustCompile(`[/\\<>:"|?*\x00-\x1f]`)

func registerSanitize(r *builtins.Registry) {
	r.Register("sanitize", builtins.FuncInfo{
		Description: "Remove filesystem-illegal characters and trailing spaces/dots from a string; an empty result becomes \"_\".",
		Signature: builtins.Signature{
			Params: []builtins.Param{{Type: types.Of(value.StringKind)}},
			Return: types.Of(value.StringKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: sanitizeFilename(args[0].(value.String).V)}, nil
		},
	})

	r.Register("sanitize_plex_episode", builtins.FuncInfo{
		Description: "Sanitize a string and replace digits with Plex-safe fullwidth digit forms.",
		Signature: builtins.Signature{
			Params: []builtins.Param{{Type: types.Of(value.StringKind)}},
			Return: types.Of(value.StringKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: sanitizePlexEpisode(args[0].(value.String).V)}, nil
		},
	})
}

func sanitizeFilename(s string) string {
	s = illegalFilenameChars.ReplaceAllString(s, "")
	s = strings.TrimRight(s, " .")
	if s == "" {
		return "_"
	}
	return s
}

// fullwidthDigits maps ASCII '0'-'9' to their fullwidth Unicode forms, the
// way Plex's episode-title matcher tolerates digits inside a sanitized
// title without mistaking them for a season/episode marker.
var fullwidthDigits = map[rune]rune{
	'0': '０', '1': '１', '2': '２', '3': '３', '4': '４',
	'5': '５', '6': '６', '7': '７', '8': '８', '9': '９',
}

func sanitizePlexEpisode(s string) string {
	sanitized := sanitizeFilename(s)
	var sb strings.Builder
	for _, c := range sanitized {
		if fw, ok := fullwidthDigits[c]; ok {
			sb.WriteRune(fw)
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func registerToDateMetadata(r *builtins.Registry) {
	r.Register("to_date_metadata", builtins.FuncInfo{
		Description: "Expand a YYYYMMDD string into a Map of date parts (forward and reversed, for use in season/episode numbering templates).",
		Signature: builtins.Signature{
			Params: []builtins.Param{{Type: types.Of(value.StringKind)}},
			Return: types.Of(value.MapKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return toDateMetadata(args[0].(value.String).V)
		},
	})
}

func toDateMetadata(dateStr string) (value.Value, error) {
	if len(dateStr) != 8 {
		return nil, scripterr.New(scripterr.FunctionRuntime,
			"expected input of to_date_metadata to be YYYYMMDD, but received %q", dateStr)
	}
	for _, c := range dateStr {
		if c < '0' || c > '9' {
			return nil, scripterr.New(scripterr.FunctionRuntime,
				"expected input of to_date_metadata to be YYYYMMDD, but received %q", dateStr)
		}
	}

	year, _ := strconv.Atoi(dateStr[:4])
	monthPadded, dayPadded := dateStr[4:6], dateStr[6:8]
	month, _ := strconv.Atoi(monthPadded)
	day, _ := strconv.Atoi(dayPadded)
	if month < 1 || month > 12 {
		return nil, scripterr.New(scripterr.FunctionRuntime,
			"expected input of to_date_metadata to be YYYYMMDD, but received %q", dateStr)
	}
	yearTruncated := year % 100

	totalDaysInMonth := daysInMonth[month]
	totalDaysInYear := 365
	dayOfYear := sumDays(month) + day
	if year%4 == 0 {
		totalDaysInYear++
		if month == 2 {
			totalDaysInMonth++
		}
		if month > 2 {
			dayOfYear++
		}
	}

	dayOfYearReversed := totalDaysInYear + 1 - dayOfYear
	monthReversed := 13 - month
	dayReversed := totalDaysInMonth + 1 - day

	keys := []value.Value{
		value.String{V: "date"}, value.String{V: "date_standardized"}, value.String{V: "year"},
		value.String{V: "month"}, value.String{V: "day"}, value.String{V: "year_truncated"},
		value.String{V: "month_padded"}, value.String{V: "day_padded"},
		value.String{V: "year_truncated_reversed"}, value.String{V: "month_reversed"},
		value.String{V: "month_reversed_padded"}, value.String{V: "day_reversed"},
		value.String{V: "day_reversed_padded"}, value.String{V: "day_of_year"},
		value.String{V: "day_of_year_padded"}, value.String{V: "day_of_year_reversed"},
		value.String{V: "day_of_year_reversed_padded"},
	}
	vals := []value.Value{
		value.String{V: dateStr},
		value.String{V: strconv.Itoa(year) + "-" + monthPadded + "-" + dayPadded},
		value.Integer{V: int64(year)},
		value.Integer{V: int64(month)},
		value.Integer{V: int64(day)},
		value.Integer{V: int64(yearTruncated)},
		value.String{V: monthPadded},
		value.String{V: dayPadded},
		value.Integer{V: int64(100 - yearTruncated)},
		value.Integer{V: int64(monthReversed)},
		value.String{V: pad(monthReversed, 2)},
		value.Integer{V: int64(dayReversed)},
		value.String{V: pad(dayReversed, 2)},
		value.Integer{V: int64(dayOfYear)},
		value.String{V: pad(dayOfYear, 3)},
		value.Integer{V: int64(dayOfYearReversed)},
		value.String{V: pad(dayOfYearReversed, 3)},
	}
	return value.NewMap(keys, vals), nil
}

func sumDays(uptoMonthExclusive int) int {
	total := 0
	for i := 1; i < uptoMonthExclusive; i++ {
		total += daysInMonth[i]
	}
	return total
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// maxPathComponentBytes is the common filesystem limit (ext4/NTFS/APFS all
// cap a single path component at 255 bytes).
const maxPathComponentBytes = 255

func registerFilepathHelpers(r *builtins.Registry) {
	r.Register("truncate_filepath_if_too_long", builtins.FuncInfo{
		Description: "Truncate any path component exceeding the filesystem's 255-byte limit, preserving the file extension.",
		Signature: builtins.Signature{
			Params: []builtins.Param{{Type: types.Of(value.StringKind)}},
			Return: types.Of(value.StringKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: truncateFilepathIfTooLong(args[0].(value.String).V)}, nil
		},
	})

	r.Register("to_native_filepath", builtins.FuncInfo{
		Description: "Convert a slash-separated path to the host OS's native separator.",
		Signature: builtins.Signature{
			Params: []builtins.Param{{Type: types.Of(value.StringKind)}},
			Return: types.Of(value.StringKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: filepath.FromSlash(args[0].(value.String).V)}, nil
		},
	})
}

func truncateFilepathIfTooLong(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if len(part) <= maxPathComponentBytes {
			continue
		}
		ext := filepath.Ext(part)
		base := strings.TrimSuffix(part, ext)
		keep := maxPathComponentBytes - len(ext)
		if keep < 0 {
			keep = 0
		}
		parts[i] = truncateBytes(base, keep) + ext
	}
	return strings.Join(parts, "/")
}

// truncateBytes cuts s to at most n bytes without splitting a multi-byte
// rune in half.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	b := []byte(s)[:n]
	for len(b) > 0 && !isUTF8Boundary(b) {
		b = b[:len(b)-1]
	}
	return string(b)
}

func isUTF8Boundary(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	last := b[len(b)-1]
	return last&0xC0 != 0x80
}
