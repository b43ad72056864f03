package analysis

import (
	"regexp"
	"strings"
)

var (
	reportURLPattern  = regexp.MustCompile(`(?:https?://)?(?:www\.)?fflogs\.com/reports/(?P<code>[a-zA-Z0-9]{16})`)
	reportCodePattern = regexp.MustCompile(`(?P<code>[a-zA-Z0-9]{16})`)
)

// ParseReportCode extracts the 16 character report code from a bare code or an fflogs.com report URL.
func ParseReportCode(codeOrURL string) (string, error) {
	codeOrURL = strings.TrimSpace(codeOrURL)
	for _, re := range []*regexp.Regexp{reportURLPattern, reportCodePattern} {
		if m := re.FindStringSubmatch(codeOrURL); m != nil {
			return m[re.SubexpIndex("code")], nil
		}
	}
	return "", ErrInvalidReportCode
}

// ReportURL is the public fflogs.com page of a report.
func ReportURL(code string) string {
	return "https://www.fflogs.com/reports/" + code
}
