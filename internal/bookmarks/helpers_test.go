package bookmarks

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const documentHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

const emptyDocument = documentHeader + `<DL><p>
</DL><p>
`

const singleLevelDocument = documentHeader + `<DL><p>
    <DT><A HREF="https://website.com">Website</A>
    <DT><A HREF="https://website.com">Website</A>
    <DT><A HREF="https://website.com">Website</A>
    <DT><H3>Folder 1</H3>
    <DL><p>
        <DT><A HREF="https://website.com">Website</A>
        <DT><A HREF="https://website.com">Website</A>
    </DL><p>
    <DT><A HREF="https://website.com">Website</A>
    <DT><H3>Folder 2</H3>
    <DL><p>
        <DT><A HREF="https://website.com">Website</A>
        <DT><A HREF="https://website.com">Website</A>
    </DL><p>
</DL><p>
`

const multipleLevelDocument = documentHeader + `<DL><p>
    <DT><A HREF="https://website.com">Website</A>
    <DT><A HREF="https://website.com">Website</A>
    <DT><A HREF="https://website.com">Website</A>
    <DT><H3>Folder 1</H3>
    <DL><p>
        <DT><A HREF="https://website.com">Website</A>
        <DT><A HREF="https://website.com">Website</A>
        <DT><A HREF="https://website.com">Website</A>
        <DT><H3>Folder 1.1</H3>
        <DL><p>
            <DT><A HREF="https://website.com">Website</A>
            <DT><A HREF="https://website.com">Website</A>
        </DL><p>
        <DT><H3>Folder 1.2</H3>
        <DL><p>
            <DT><A HREF="https://website.com">Website</A>
            <DT><A HREF="https://website.com">Website</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="https://website.com">Website</A>
    <DT><H3>Folder 2</H3>
    <DL><p>
        <DT><A HREF="https://website.com">Website</A>
        <DT><A HREF="https://website.com">Website</A>
    </DL><p>
</DL><p>
`

const platformLinksDocument = documentHeader + `<DL><p>
    <DT><A HREF="https://youtube.com/watch?v=00000000000">Website</A>
    <DT><A HREF="https://website.com">Website</A>
    <DT><A HREF="https://website.com">Website</A>
    <DT><H3>Folder 1</H3>
    <DL><p>
        <DT><A HREF="https://youtube.com/watch?v=11111111111">Website</A>
        <DT><A HREF="https://website.com">Website</A>
        <DT><A HREF="https://youtube.com/watch?v=22222222222">Website</A>
        <DT><H3>Folder 1.1</H3>
        <DL><p>
            <DT><A HREF="https://website.com">Website</A>
            <DT><A HREF="https://website.com">Website</A>
        </DL><p>
        <DT><H3>Folder 1.2</H3>
        <DL><p>
            <DT><A HREF="https://youtube.com/watch?v=33333333333&amp;list=0000000000000000000000000000000000">Website</A>
            <DT><A HREF="https://website.com">Website</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="https://website.com">Website</A>
    <DT><H3>Folder 2</H3>
    <DL><p>
        <DT><A HREF="https://youtube.com/watch?list=0000000000000000000000000000000000&v=44444444444">Website</A>
        <DT><A HREF="https://website.com">Website</A>
    </DL><p>
</DL><p>
`

// manyFoldersDocument returns a document whose root has n subfolders named
// "Folder 1".."Folder n"
func manyFoldersDocument(n int) string {
	var b strings.Builder
	b.WriteString(documentHeader)
	b.WriteString("<DL><p>\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "    <DT><H3>Folder %d</H3>\n", i)
		b.WriteString("    <DL><p>\n")
		fmt.Fprintf(&b, "        <DT><A HREF=\"https://youtube.com/watch?v=%d\">Video</A>\n", i)
		b.WriteString("    </DL><p>\n")
	}
	b.WriteString("</DL><p>\n")
	return b.String()
}

// scriptedInput replays responses and reports io.EOF once they run out
type scriptedInput struct {
	responses []string
	prompts   []string
	err       error
}

func newScriptedInput(responses ...string) *scriptedInput {
	return &scriptedInput{responses: responses}
}

func (s *scriptedInput) ReadLine(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.responses) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.responses[0]
	s.responses = s.responses[1:]
	return line, nil
}

// recordingOutput keeps every line written, and counts separators
type recordingOutput struct {
	lines      []string
	emptyLines int
	transcript []string
}

func (r *recordingOutput) WriteLine(line string) {
	r.lines = append(r.lines, line)
	r.transcript = append(r.transcript, line)
}

func (r *recordingOutput) WriteEmptyLine() {
	r.emptyLines++
	r.transcript = append(r.transcript, "")
}

func nullLogger() *logrus.Logger {
	log, _ := logtest.NewNullLogger()
	return log
}

var errBrokenInput = errors.New("broken terminal")
