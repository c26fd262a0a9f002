package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	promptTime         = "⏰ اكتب وقت النشر HH:MM (مثال 09:00):"
	promptEvery        = "⏳ اكتب كل كم ساعة تريد النشر؟ (1–24) مثلاً: 1"
	promptEveryMinutes = "⏱️ اكتب كل كم دقيقة تريد النشر؟ (1–60) مثلاً: 1"
	promptSpan         = "🧩 كم يوم تريد تضمينه في كل رسالة؟ (1–14):"
	promptOrderNumber  = "🧾 اكتب رقم الأمر الجامعي (مثال 2971):"
	promptOrderDate    = "📅 اكتب تاريخ الأمر بصيغة YYYY/MM/DD (مثال 2025/04/30):"
	promptFile         = "📂 أرسل الآن ملف الإكسل. سأحلّله وأعرض معاينة."

	fileHelpText  = "📂 أرسل ملف XLSX/CSV/TSV/JSON (يفضّل بالخاص). سيتم استخدام أول شيت."
	sheetHelpText = "🧾 المعاينة النصية المتقدمة غير مفعّلة هنا، لكن المعالجة عند التحميل كاملة."
)

func (h *BotHandler) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	h.answerCallback(cb.ID)

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	data := cb.Data

	// paging and day toggles carry a parameter after the colon
	switch {
	case strings.HasPrefix(data, "dsel:"):
		h.handleDayToggle(cb, data[len("dsel:"):])
		return
	case strings.HasPrefix(data, "pg:"):
		h.handleGroupsPage(cb, data[len("pg:"):])
		return
	case strings.HasPrefix(data, "pick:"):
		h.handleGroupPick(cb, data[len("pick:"):])
		return
	}

	switch data {
	case "go_menu":
		h.replyMenu(cb.Message.Chat)

	case "t_set_current":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		if !cb.Message.Chat.IsGroup() && !cb.Message.Chat.IsSuperGroup() {
			h.reply(chatID, "استخدم هذا الزر داخل الكروب.")
			return
		}
		h.upsertChat(cb.Message.Chat, "active")
		h.setSetting(chatID, domain.KeyTargetChatID, strconv.FormatInt(chatID, 10))
		h.reply(chatID, "✅ تم تعيين هذا الكروب هدفًا للنشر.")

	case "t_choose":
		if !cb.Message.Chat.IsPrivate() || !h.isOwner(userID) {
			h.reply(chatID, "نفّذ من الخاص ومن حساب المالك.")
			return
		}
		h.sendGroupsPage(chatID, 0)

	case "groups_list":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		h.sendGroupsPage(chatID, 0)

	case "t_show":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		h.reply(chatID, h.targetText())

	case "sched_enable":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		h.setSetting(chatID, domain.KeySchedEnabled, "true")
		h.reply(chatID, "▶️ تم تشغيل الجدولة.")

	case "sched_disable":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		h.setSetting(chatID, domain.KeySchedEnabled, "false")
		h.reply(chatID, "⏹️ تم إيقاف الجدولة.")

	case "sched_run_now":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		h.postNowMessage(chatID)

	case "sched_setup":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		state := entity.NewWizardState()
		if err := h.dm.Session().Set(userID, state); err != nil {
			log.Printf("Failed to save wizard state for user %d: %v", userID, err)
			h.reply(chatID, "حدث خطأ أثناء الحفظ، حاول مجددًا.")
			return
		}
		h.replyWithKeyboard(chatID, "اختر نمط الجدولة:", modeKeyboard())

	case "sm_weekly", "sm_daily", "sm_every", "sm_every_min":
		h.handleModeChoice(cb, data)

	case "days_done":
		state := h.loadState(chatID, userID)
		if state == nil {
			return
		}
		if err := state.DaysDone(); err != nil {
			h.reply(chatID, "اختر يومًا واحدًا على الأقل.")
			return
		}
		h.saveState(chatID, userID, state)
		h.reply(chatID, promptTime)

	case "file_help":
		h.reply(chatID, fileHelpText)

	case "sheet_help":
		h.reply(chatID, sheetHelpText)

	case "topic_set_here":
		h.reply(chatID, "استخدم الأمر /settopic <topic_id> داخل الموضوع المطلوب.")

	case "sched_start":
		if !h.isOwner(userID) {
			h.reply(chatID, ownerOnlyText)
			return
		}
		target, _ := h.dm.Settings().Get(domain.KeyTargetChatID)
		if target == "" {
			h.reply(chatID, "عيّن هدف النشر أولًا.")
			return
		}
		h.setSetting(chatID, domain.KeySchedEnabled, "true")
		if md, err := h.dm.Roster().MinDate(); err == nil && md != "" {
			h.setSetting(chatID, domain.KeyCursorISO, md)
		}
		if err := h.dm.Session().Clear(userID); err != nil {
			log.Printf("Failed to clear wizard state for user %d: %v", userID, err)
		}
		h.reply(chatID, "✅ تم تفعيل الجدولة. سيتم النشر تلقائيًا حسب الإعدادات.")

	case "sched_cancel":
		if err := h.dm.Session().Clear(userID); err != nil {
			log.Printf("Failed to clear wizard state for user %d: %v", userID, err)
		}
		h.reply(chatID, "أُلغي الإعداد.")
	}
}

func (h *BotHandler) handleModeChoice(cb *tgbotapi.CallbackQuery, data string) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	state := h.loadState(chatID, userID)
	if state == nil {
		return
	}

	mode := map[string]string{
		"sm_weekly":    domain.ModeWeeklyDays,
		"sm_daily":     domain.ModeDaily,
		"sm_every":     domain.ModeEveryHours,
		"sm_every_min": domain.ModeEveryMinutes,
	}[data]

	if err := state.ChooseMode(mode); err != nil {
		h.reply(chatID, "ابدأ بالإعداد من القائمة (⏱️ إعداد/تعديل الجدولة).")
		return
	}
	h.saveState(chatID, userID, state)

	switch state.Step {
	case entity.StepAwaitingDays:
		h.replyWithKeyboard(chatID, "اختر أيام الأسبوع للنشر:", daysKeyboard(state))
	case entity.StepAwaitingTime:
		h.reply(chatID, promptTime)
	case entity.StepAwaitingEvery:
		h.reply(chatID, promptEvery)
	case entity.StepAwaitingEveryMinutes:
		h.reply(chatID, promptEveryMinutes)
	}
}

func (h *BotHandler) handleDayToggle(cb *tgbotapi.CallbackQuery, arg string) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	day, err := strconv.Atoi(arg)
	if err != nil {
		return
	}

	state := h.loadState(chatID, userID)
	if state == nil {
		return
	}
	if err := state.ToggleDay(day); err != nil {
		h.reply(chatID, "ابدأ بالإعداد من القائمة (⏱️ إعداد/تعديل الجدولة).")
		return
	}
	h.saveState(chatID, userID, state)

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, daysKeyboard(state))
	if _, err := h.api.Request(edit); err != nil {
		log.Printf("Failed to update day keyboard in chat %d: %v", chatID, err)
	}
}

func (h *BotHandler) handleGroupsPage(cb *tgbotapi.CallbackQuery, arg string) {
	chatID := cb.Message.Chat.ID

	page, err := strconv.Atoi(arg)
	if err != nil || page < 0 {
		return
	}

	chats, total, err := h.dm.Chat().ListGroupsPage(page, groupsPageSize)
	if err != nil {
		log.Printf("Failed to list groups: %v", err)
		return
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, groupsKeyboard(page, total, chats))
	if _, err := h.api.Request(edit); err != nil {
		log.Printf("Failed to update groups keyboard in chat %d: %v", chatID, err)
	}
}

func (h *BotHandler) handleGroupPick(cb *tgbotapi.CallbackQuery, arg string) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	if !h.isOwner(userID) {
		h.reply(chatID, ownerOnlyText)
		return
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id == 0 {
		return
	}

	h.setSetting(chatID, domain.KeyTargetChatID, strconv.FormatInt(id, 10))
	h.reply(chatID, "✅ تم اختيار الهدف.")
}

func (h *BotHandler) sendGroupsPage(chatID int64, page int) {
	chats, total, err := h.dm.Chat().ListGroupsPage(page, groupsPageSize)
	if err != nil {
		log.Printf("Failed to list groups: %v", err)
		h.reply(chatID, "حدث خطأ أثناء جلب المجموعات.")
		return
	}
	if total == 0 {
		h.reply(chatID, "لا توجد مجموعات محفوظة.")
		return
	}
	h.replyWithKeyboard(chatID, "📚 المجموعات:", groupsKeyboard(page, total, chats))
}

// postNowMessage sends the stored static message to the configured target,
// reporting the outcome to the owner.
func (h *BotHandler) postNowMessage(replyChatID int64) {
	targetRaw, _ := h.dm.Settings().Get(domain.KeyTargetChatID)
	targetID, _ := strconv.ParseInt(targetRaw, 10, 64)
	if targetID == 0 {
		h.reply(replyChatID, "عيّن الهدف أولًا.")
		return
	}

	topicRaw, _ := h.dm.Settings().Get(domain.KeyTargetTopicID)
	topicID, _ := strconv.ParseInt(topicRaw, 10, 64)

	if err := h.transport.SendLongText(targetID, topicID, h.nowMessage(), 3500); err != nil {
		h.transport.NotifyOwner("❌ فشل الإرسال: " + err.Error())
		return
	}

	suffix := ""
	if topicID != 0 {
		suffix = fmt.Sprintf(" (Topic %d)", topicID)
	}
	h.transport.NotifyOwner(fmt.Sprintf("✅ أُرسلت الرسالة الثابتة إلى %d%s.", targetID, suffix))
}

func (h *BotHandler) targetText() string {
	raw, _ := h.dm.Settings().Get(domain.KeyTargetChatID)
	if raw == "" {
		return "لا يوجد هدف معيّن بعد."
	}

	topic, _ := h.dm.Settings().Get(domain.KeyTargetTopicID)
	if topic == "" {
		topic = "(غير محدد)"
	}
	return fmt.Sprintf("🎯 الهدف: ID=%s\n🧵 Topic: %s", raw, topic)
}

func (h *BotHandler) answerCallback(id string) {
	if _, err := h.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		log.Printf("Failed to answer callback %s: %v", id, err)
	}
}

// loadState fetches the caller's wizard state, nudging them back to the menu
// when none exists.
func (h *BotHandler) loadState(chatID, userID int64) *entity.WizardState {
	state, err := h.dm.Session().Get(userID)
	if err != nil {
		log.Printf("Failed to load wizard state for user %d: %v", userID, err)
		return nil
	}
	if state == nil {
		h.reply(chatID, "ابدأ بالإعداد من القائمة (⏱️ إعداد/تعديل الجدولة).")
		return nil
	}
	return state
}

func (h *BotHandler) saveState(chatID, userID int64, state *entity.WizardState) {
	if err := h.dm.Session().Set(userID, state); err != nil {
		log.Printf("Failed to save wizard state for user %d: %v", userID, err)
		h.reply(chatID, "حدث خطأ أثناء الحفظ، حاول مجددًا.")
	}
}
