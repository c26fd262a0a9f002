package handlers

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleWizardText feeds free-form text into the schedule-setup wizard. Text
// from users without an active wizard session is ignored.
func (h *BotHandler) handleWizardText(msg *tgbotapi.Message) {
	state, err := h.dm.Session().Get(msg.From.ID)
	if err != nil {
		log.Printf("Failed to load wizard state for user %d: %v", msg.From.ID, err)
		return
	}
	if state == nil {
		return
	}

	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch state.Step {
	case entity.StepAwaitingTime:
		if err := state.SetTime(text); err != nil {
			h.reply(chatID, "صيغة غير صحيحة. اكتب مثل 09:00")
			return
		}
		h.saveState(chatID, msg.From.ID, state)
		h.reply(chatID, promptSpan)

	case entity.StepAwaitingEvery:
		n, convErr := strconv.Atoi(text)
		if convErr != nil || state.SetEveryHours(n) != nil {
			h.reply(chatID, "اكتب رقم بين 1 و 24.")
			return
		}
		h.saveState(chatID, msg.From.ID, state)
		h.reply(chatID, promptSpan)

	case entity.StepAwaitingEveryMinutes:
		n, convErr := strconv.Atoi(text)
		if convErr != nil || state.SetEveryMinutes(n) != nil {
			h.reply(chatID, "اكتب رقم بين 1 و 60.")
			return
		}
		h.saveState(chatID, msg.From.ID, state)
		h.reply(chatID, promptSpan)

	case entity.StepAwaitingSpan:
		n, convErr := strconv.Atoi(text)
		if convErr != nil || state.SetSpan(n) != nil {
			h.reply(chatID, fmt.Sprintf("اكتب رقم 1–%d.", domain.MaxWizardSpan))
			return
		}
		h.saveState(chatID, msg.From.ID, state)
		h.reply(chatID, promptOrderNumber)

	case entity.StepAwaitingOrderNumber:
		if text == "" || state.SetOrderNumber(text) != nil {
			h.reply(chatID, promptOrderNumber)
			return
		}
		h.saveState(chatID, msg.From.ID, state)
		h.reply(chatID, promptOrderDate)

	case entity.StepAwaitingOrderDate:
		if err := state.SetOrderDate(text); err != nil {
			h.reply(chatID, "صيغة التاريخ غير صحيحة. مثل 2025/04/30")
			return
		}
		h.saveState(chatID, msg.From.ID, state)
		h.reply(chatID, promptFile)
	}
}

// handleDocument receives the roster file at the end of the wizard, replaces
// the roster, persists the collected schedule settings and shows a preview
// with a start/cancel confirmation.
func (h *BotHandler) handleDocument(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	state, err := h.dm.Session().Get(userID)
	if err != nil {
		log.Printf("Failed to load wizard state for user %d: %v", userID, err)
		return
	}
	if state == nil || state.Step != entity.StepAwaitingFile {
		if (msg.Chat.IsGroup() || msg.Chat.IsSuperGroup()) && !h.isOwner(userID) {
			h.reply(chatID, "⚠️ أرسل الملف في الخاص مع البوت.")
		}
		return
	}

	if !h.allowAnyoneUpload && !h.isOwner(userID) {
		h.reply(chatID, "للأمان: القراءة للمالك فقط.")
		return
	}

	doc := msg.Document
	format := service.DetectFormat(doc.FileName, doc.MimeType)
	if format == service.FormatXLS {
		h.reply(chatID, "صيغة XLS القديمة غير مدعومة. أعد حفظ الملف بصيغة XLSX.")
		return
	}
	if format == service.FormatUnknown {
		h.reply(chatID, "ادعم: XLSX/CSV/TSV/JSON")
		return
	}

	h.reply(chatID, "📥 جارٍ تحميل الملف...")

	data, err := h.transport.FetchUploadedFile(doc.FileID)
	if err != nil {
		log.Printf("Failed to fetch uploaded file %s: %v", doc.FileID, err)
		h.failImport(chatID, userID)
		return
	}

	summary, err := h.services.Importer.Import(data, format)
	if err != nil {
		log.Printf("Roster import failed: %v", err)
		h.failImport(chatID, userID)
		return
	}

	if !h.persistSchedule(chatID, state) {
		return
	}

	md, err := h.dm.Roster().MinDate()
	if err != nil || md == "" {
		h.reply(chatID, "لم أجد سجلات صالحة بعد التحميل.")
		if err := h.dm.Session().Clear(userID); err != nil {
			log.Printf("Failed to clear wizard state for user %d: %v", userID, err)
		}
		return
	}

	h.reply(chatID, importSummaryText(summary))

	start, err := time.ParseInLocation("2006-01-02", md, h.loc)
	if err == nil {
		preview, buildErr := h.services.Message.BuildPeriodMessage(state.OrderNumber, state.OrderDate, start, state.SpanDays)
		if buildErr == nil {
			h.reply(chatID, "🧾 هذه معاينة لأول رسالة سيتم نشرها:")
			if sendErr := h.transport.SendLongText(chatID, 0, preview, 3500); sendErr != nil {
				log.Printf("Failed to send preview to chat %d: %v", chatID, sendErr)
			}
		}
	}

	h.replyWithKeyboard(chatID, "هل تريد بدء الجدولة؟", confirmScheduleKeyboard())
}

// persistSchedule writes the wizard's collected values to settings in one
// transaction, so a failure mid-write never leaves a half-saved schedule.
// The cursor is cleared so posting restarts from the roster's first date.
func (h *BotHandler) persistSchedule(replyChatID int64, state *entity.WizardState) bool {
	days := append([]int(nil), state.Days...)
	sort.Ints(days)
	csv := make([]string, len(days))
	for i, d := range days {
		csv[i] = strconv.Itoa(d)
	}

	values := []struct{ key, value string }{
		{domain.KeySchedMode, state.Mode},
		{domain.KeySchedDaysCSV, strings.Join(csv, ",")},
		{domain.KeySchedTime, state.Time},
		{domain.KeySchedEveryHours, strconv.Itoa(state.EveryHours)},
		{domain.KeySchedEveryMinutes, strconv.Itoa(state.EveryMinutes)},
		{domain.KeyPostSpanDays, strconv.Itoa(state.SpanDays)},
		{domain.KeyOrderNumber, state.OrderNumber},
		{domain.KeyOrderDate, state.OrderDate},
		{domain.KeyCursorISO, ""},
	}

	err := h.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
		for _, v := range values {
			if v.value == "" {
				if err := dm.Settings().Delete(v.key); err != nil {
					return err
				}
				continue
			}
			if err := dm.Settings().Set(v.key, v.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to persist schedule settings: %v", err)
		h.reply(replyChatID, "حدث خطأ أثناء الحفظ، حاول مجددًا.")
		return false
	}

	return true
}

func (h *BotHandler) failImport(chatID, userID int64) {
	h.reply(chatID, "❌ فشل التحميل/التحويل. تأكد من الأعمدة والتواريخ.")
	if err := h.dm.Session().Clear(userID); err != nil {
		log.Printf("Failed to clear wizard state for user %d: %v", userID, err)
	}
}

func importSummaryText(summary *entity.ImportSummary) string {
	text := fmt.Sprintf("✅ تم استيراد %d سجل.", summary.Imported)
	if summary.Skipped > 0 {
		text += fmt.Sprintf("\n⚠️ تم تجاهل %d سطر:", summary.Skipped)
		if n := summary.Reasons[entity.SkipBadDate]; n > 0 {
			text += fmt.Sprintf("\n• تاريخ غير مقروء: %d", n)
		}
		if n := summary.Reasons[entity.SkipEmptyName]; n > 0 {
			text += fmt.Sprintf("\n• اسم فارغ: %d", n)
		}
	}
	return text
}
