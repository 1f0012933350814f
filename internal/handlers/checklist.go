package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"spamlab/internal/content"
	"spamlab/internal/middleware"
)

// ChecklistHandler toggles items on the chapter seven deployment checklist.
type ChecklistHandler struct {
	catalog *content.Catalog
	logger  *zap.Logger
}

// NewChecklistHandler creates a new checklist handler.
func NewChecklistHandler(catalog *content.Catalog, logger *zap.Logger) *ChecklistHandler {
	return &ChecklistHandler{catalog: catalog, logger: logger}
}

func checklistView(chapter int, items []content.ChecklistItem, checked map[string]bool) fiber.Map {
	rows := make([]fiber.Map, 0, len(items))
	done := 0
	for _, item := range items {
		if checked[item.ID] {
			done++
		}
		rows = append(rows, fiber.Map{"ID": item.ID, "Text": item.Text, "Checked": checked[item.ID]})
	}
	return fiber.Map{"Chapter": chapter, "Items": rows, "Done": done, "Total": len(items)}
}

// Toggle flips one item. Only a chapter that embeds the checklist accepts it.
func (h *ChecklistHandler) Toggle(c fiber.Ctx) error {
	n, err := content.ParseChapterID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
	}
	ch, err := h.catalog.Chapter(n)
	if err != nil || !ch.HasWidget("checklist") {
		return fiber.NewError(fiber.StatusNotFound, "Chapter has no checklist")
	}

	id := c.Params("item")
	if !h.catalog.HasChecklistItem(id) {
		return fiber.NewError(fiber.StatusNotFound, "Checklist item not found")
	}

	checked := middleware.Checklist(c)
	if checked[id] {
		delete(checked, id)
	} else {
		checked[id] = true
	}

	if err := middleware.SaveChecklist(c, checked); err != nil {
		h.logger.Error("Failed to save checklist", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Could not save your checklist")
	}

	if isHTMX(c) {
		return renderPartial(c, "partials/checklist", checklistView(ch.Number, h.catalog.Checklist(), checked))
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To(fmt.Sprintf("/chapter/%d#checklist", ch.Number))
}
