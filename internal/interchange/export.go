package interchange

import (
	"time"

	"github.com/rcliao/faq-catalog/internal/model"
	"github.com/rcliao/faq-catalog/internal/sheet"
)

// Worksheet names.
const (
	ExportSheet   = "FAQ_Master"
	TemplateSheet = "Template"
)

// ExportColumns is the exact column set of an export.
var ExportColumns = []string{
	"id", "code", "type", "category", "title", "question", "answer",
	"ctaDefault", "fileUrl", "keywords", "tags", "priority", "status", "createdAt",
}

// TemplateColumns documents what an import understands.
var TemplateColumns = []string{
	"code", "type", "category", "subCategory", "title", "question", "answer",
	"ctaDefault", "fileUrl", "keywords", "tags", "priority", "status", "ageGroup", "subject",
}

// ExportTable builds the export sheet. Entries must carry tag names, not ids.
func ExportTable(entries []model.Entry) sheet.Table {
	t := sheet.Table{Name: ExportSheet, Columns: ExportColumns, Rows: make([][]any, len(entries))}
	for i, e := range entries {
		t.Rows[i] = []any{
			e.ID, e.Code, e.Type, e.Category, e.Title, e.Question, e.Answer,
			e.CTADefault, e.FileURL,
			model.JoinList(e.Keywords), model.JoinList(e.Tags),
			e.Priority, e.Status.Label(), e.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return t
}

// TemplateTable returns a one-row example sheet.
func TemplateTable() sheet.Table {
	return sheet.Table{
		Name:    TemplateSheet,
		Columns: TemplateColumns,
		Rows: [][]any{{
			"FAQ-CODE-001",
			model.DefaultEntryType,
			"Giới thiệu",
			"Chung",
			"Học phí môn Cờ Vua bao nhiêu?",
			"Học phí cờ vua",
			"Học phí tại SkillUp là 1.500.000 VNĐ/Khóa...",
			"Ba mẹ nhắn em số điện thoại nhé!",
			"https://skillup.vn/tailieu.pdf",
			"học phí, cờ vua, tiền học",
			"Học phí, Cờ vua",
			DefaultPriority,
			model.StatusPending.Label(),
			DefaultAgeGroup,
			"Cờ Vua",
		}},
	}
}
