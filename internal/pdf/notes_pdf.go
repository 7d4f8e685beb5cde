package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"quicknotes/internal/models"
)

// Renderer: интерфейс (удобно мокать в тестах)
type Renderer interface {
	RenderNotes(w io.Writer, owner string, notes []models.Note) error
}

// NotesRenderer: реализация на gofpdf.
type NotesRenderer struct {
	FontPath string // путь до TTF с кириллицей; если пусто, встроенный Helvetica
	fontName string
	now      func() time.Time
}

func NewNotesRenderer(fontPath string) *NotesRenderer {
	return &NotesRenderer{FontPath: fontPath, fontName: "DejaVu", now: time.Now}
}

func (g *NotesRenderer) RenderNotes(w io.Writer, owner string, notes []models.Note) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Notes", true)
	pdf.SetAuthor(owner, true)

	font, tr := g.setupFont(pdf)
	pdf.AddPage()

	pdf.SetFont(font, "B", 18)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Notes of %s", owner)), "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Exported %s, %d note(s)", g.now().Format("2006-01-02 15:04"), len(notes))), "", 1, "L", false, 0, "")
	g.hr(pdf)

	for _, n := range notes {
		title := n.Title
		if n.IsPinned {
			title = "[pinned] " + title
		}
		g.sectionTitle(pdf, font, tr(title))

		pdf.SetFont(font, "", 11)
		pdf.MultiCell(0, 6, tr(n.Content), "", "L", false)

		pdf.SetFont(font, "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, tr("Updated "+n.UpdatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		g.hr(pdf)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render notes pdf: %w", err)
	}
	return pdf.Output(w)
}

// ===== helpers =====

func (g *NotesRenderer) setupFont(pdf *gofpdf.Fpdf) (string, func(string) string) {
	if g.FontPath != "" {
		// AddUTF8Font принимает путь до TTF
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
		return g.fontName, func(s string) string { return s }
	}
	// встроенные шрифты умеют только cp1252
	return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
}

func (g *NotesRenderer) sectionTitle(pdf *gofpdf.Fpdf, font, s string) {
	pdf.Ln(2)
	pdf.SetFont(font, "B", 13)
	pdf.MultiCell(0, 7, strings.TrimSpace(s), "", "L", false)
}

func (g *NotesRenderer) hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 190, y)
	pdf.Ln(3)
}
