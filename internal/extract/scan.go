package extract

import (
	"regexp"
	"strings"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

// ws matches any Unicode whitespace, including the no-break spaces PDF text
// layers often carry. RE2's \s alone is ASCII-only. Digits stay ASCII.
const ws = `[\s\p{Z}\x{85}]`

var (
	// taskMarkerRegex matches "Task 1.01"; group 1 is the whole marker and
	// group 2 the dotted number.
	taskMarkerRegex = regexp.MustCompile(`(?i)(Task` + ws + `+(\d{1,2}\.\d{1,2}))`)

	taskNumberRegex = regexp.MustCompile(`(\d{1,2}\.\d{1,2})`)
)

type fieldPattern struct {
	key   string
	regex *regexp.Regexp
}

// labelRegex builds the pattern for a label given as space-separated words.
// The words may be separated by any run of whitespace, the whitespace after
// the colon may span line breaks and the captured value may not.
func labelRegex(label string) *regexp.Regexp {
	words := strings.Fields(label)
	return regexp.MustCompile(`(?i)` + strings.Join(words, ws+`+`) + `:` + ws + `*(.*)`)
}

// fieldPatterns capture the remainder of the line after a label.
var fieldPatterns = []fieldPattern{
	{domain.FieldPersonnelRequired, labelRegex("Personnel required to perform work")},
	{domain.FieldEnergyIsolation, labelRegex("Energy Isolation")},
	{domain.FieldTimeRequired, labelRegex("Time Required")},
	{domain.FieldConsumables, labelRegex("Consumables")},
	{domain.FieldToolsRequired, labelRegex("Tools Required")},
	{domain.FieldSummary, labelRegex("Summary")},
}

// markerBlock is one task marker and the text up to the next marker.
type markerBlock struct {
	marker string
	// number is empty when the marker carried no parseable number.
	number string
	record domain.TaskRecord
}

// pageScan is the order-preserving result of scanning one page.
type pageScan struct {
	page   int
	blocks []markerBlock
}

// scanPage splits one page on task markers and parses every block. It does
// not deduplicate; that is left to the merge step.
func scanPage(page int, text string) pageScan {
	locs := taskMarkerRegex.FindAllStringSubmatchIndex(text, -1)
	scan := pageScan{page: page, blocks: make([]markerBlock, 0, len(locs))}

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		marker := strings.TrimSpace(text[loc[2]:loc[3]])
		block := markerBlock{marker: marker}

		number := taskNumberRegex.FindString(marker)
		if number != "" {
			block.number = number
			block.record = parseBlock(number, text[loc[1]:end])
		}
		scan.blocks = append(scan.blocks, block)
	}
	return scan
}

// parseBlock builds a record from the text that follows a marker: the first
// line is the title, the rest is searched for labeled fields.
func parseBlock(number, content string) domain.TaskRecord {
	body := strings.TrimSpace(content)

	title, details := body, ""
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		title = strings.TrimSpace(body[:i])
		details = strings.TrimSpace(body[i:])
	}

	return domain.TaskRecord{
		Number:  number,
		Title:   title,
		Details: parseDetails(details),
	}
}

// parseDetails applies every field pattern independently to the same text.
func parseDetails(text string) domain.TaskDetails {
	var details domain.TaskDetails
	for _, fp := range fieldPatterns {
		if m := fp.regex.FindStringSubmatch(text); m != nil {
			details.Set(fp.key, strings.TrimSpace(m[1]))
		}
	}
	return details
}
