// Package xmldoc rend un model.Document en XML.
//
// Le rendu est figé (déclaration, ordre des attributs, indentation de deux espaces,
// contenu des chapitres indenté de six espaces) pour que deux exécutions sur la même
// entrée produisent exactement les mêmes octets :
//
//	<?xml version='1.0' encoding='utf-8'?>
//	<transcript video_title="" video_published="" video_duration="" video_url="">
//	  <chapters>
//	    <chapter title="Intro" start_time="0:06">
//	      0:06
//	      [Music]
//	    </chapter>
//	  </chapters>
//	</transcript>
package xmldoc

import (
	"strings"

	"github.com/patrickprogramme/ytxml/internal/timecode"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

const (
	Declaration   = "<?xml version='1.0' encoding='utf-8'?>"
	contentIndent = "      "
)

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\r", "&#13;",
		"\n", "&#10;",
		"\t", "&#09;",
	)
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
)

// Serialize rend doc. Fonction pure, sans erreur : doc est supposé sortir de transcript.New.
// Un start non affichable (négatif, NaN, +Inf) est rendu vide.
func Serialize(doc model.Document) string {
	var b strings.Builder

	b.WriteString(Declaration)
	b.WriteByte('\n')

	m := doc.Metadata
	b.WriteString("<transcript")
	writeAttr(&b, "video_title", m.VideoTitle)
	writeAttr(&b, "video_published", m.UploadDate)
	writeAttr(&b, "video_duration", m.Duration)
	writeAttr(&b, "video_url", m.VideoURL)
	b.WriteString(">\n")

	if len(doc.Chapters) == 0 {
		b.WriteString("  <chapters />\n")
	} else {
		b.WriteString("  <chapters>\n")
		for _, ch := range doc.Chapters {
			writeChapter(&b, ch)
		}
		b.WriteString("  </chapters>\n")
	}

	b.WriteString("</transcript>\n")
	return b.String()
}

func writeChapter(b *strings.Builder, ch model.Chapter) {
	start, err := timecode.Format(ch.Start)
	if err != nil {
		start = ""
	}

	b.WriteString("    <chapter")
	writeAttr(b, "title", ch.Title)
	writeAttr(b, "start_time", start)

	if len(ch.Lines) == 0 {
		b.WriteString(" />\n")
		return
	}

	b.WriteString(">\n")
	for _, line := range ch.Lines {
		b.WriteString(contentIndent)
		b.WriteString(textEscaper.Replace(line))
		b.WriteByte('\n')
	}
	b.WriteString("    </chapter>\n")
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(attrEscaper.Replace(value))
	b.WriteByte('"')
}
