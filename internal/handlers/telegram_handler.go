package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const groupsPageSize = 8

const defaultNowMessage = `📄 جدول خفارات السلامة والدفاع المدني
(نص افتراضي — عدّله بالرد على رسالة ثم /setnow)`

const ownerOnlyText = "للمالك فقط."

type BotHandler struct {
	api               *tgbotapi.BotAPI
	dm                contract.DataManager
	services          *service.Instance
	transport         contract.MessageTransport
	loc               *time.Location
	ownerID           int64
	allowAnyoneUpload bool
}

func New(api *tgbotapi.BotAPI, dm contract.DataManager, services *service.Instance,
	transport contract.MessageTransport, loc *time.Location, ownerID int64, allowAnyoneUpload bool) *BotHandler {
	return &BotHandler{
		api:               api,
		dm:                dm,
		services:          services,
		transport:         transport,
		loc:               loc,
		ownerID:           ownerID,
		allowAnyoneUpload: allowAnyoneUpload,
	}
}

// Run consumes the long-polling update stream until the channel closes.
func (h *BotHandler) Run() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	for update := range h.api.GetUpdatesChan(updateConfig) {
		h.HandleUpdate(update)
	}
}

func (h *BotHandler) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.MyChatMember != nil:
		h.handleMyChatMember(update.MyChatMember)
	case update.CallbackQuery != nil:
		h.handleCallback(update.CallbackQuery)
	case update.Message == nil || update.Message.From == nil:
		// channel posts carry no sender
	case update.Message.IsCommand():
		h.handleCommand(update.Message)
	case update.Message.Document != nil:
		h.handleDocument(update.Message)
	case update.Message.Text != "":
		h.handleWizardText(update.Message)
	}
}

func (h *BotHandler) isOwner(userID int64) bool {
	return userID == h.ownerID
}

func (h *BotHandler) reply(chatID int64, text string) {
	if err := h.transport.SendText(chatID, 0, text); err != nil {
		log.Printf("Failed to send reply to chat %d: %v", chatID, err)
	}
}

func (h *BotHandler) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send keyboard reply to chat %d: %v", chatID, err)
	}
}

func (h *BotHandler) replyMenu(chat *tgbotapi.Chat) {
	msg := tgbotapi.NewMessage(chat.ID, "✨ <b>القائمة الرئيسية</b>\nاختر ما تريد:")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard(chat)
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send main menu to chat %d: %v", chat.ID, err)
	}
}

func (h *BotHandler) upsertChat(chat *tgbotapi.Chat, status string) {
	err := h.dm.Chat().Upsert(&entity.Chat{
		ChatID:   chat.ID,
		Type:     chat.Type,
		Title:    chat.Title,
		Username: chat.UserName,
		Status:   status,
	})
	if err != nil {
		log.Printf("Failed to upsert chat %d: %v", chat.ID, err)
	}
}

func (h *BotHandler) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.upsertChat(msg.Chat, "active")
		h.replyMenu(msg.Chat)

	case "menu":
		h.replyMenu(msg.Chat)

	case "registerhere":
		h.upsertChat(msg.Chat, "active")
		h.reply(msg.Chat.ID, "✅ تم تسجيلي هنا. ارجع للخاص واضغط (🎯 اختيار هدف).")

	case "settarget":
		if !msg.Chat.IsPrivate() || !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, "نفّذ من الخاص ومن حساب المالك.")
			return
		}
		id, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
		if err != nil || id == 0 {
			h.reply(msg.Chat.ID, "الاستخدام: /settarget <chat_id>")
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeyTargetChatID, strconv.FormatInt(id, 10))
		h.reply(msg.Chat.ID, fmt.Sprintf("✅ تم تعيين الهدف إلى: %d", id))

	case "settopic":
		if !msg.Chat.IsSuperGroup() {
			h.reply(msg.Chat.ID, "هذا الأمر داخل المجموعات فقط.")
			return
		}
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		tid, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
		if err != nil || tid == 0 {
			h.reply(msg.Chat.ID, "الاستخدام: /settopic <topic_id>")
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeyTargetTopicID, strconv.FormatInt(tid, 10))
		h.reply(msg.Chat.ID, fmt.Sprintf("✅ تم ضبط موضوع النشر على ID=%d", tid))

	case "cleartopic":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeyTargetTopicID, "")
		h.reply(msg.Chat.ID, "✅ سيتم النشر في العام.")

	case "resume":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeySchedEnabled, "true")
		h.reply(msg.Chat.ID, "▶️ تم تشغيل الجدولة.")

	case "stop":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeySchedEnabled, "false")
		h.reply(msg.Chat.ID, "⏹️ تم إيقاف الجدولة.")

	case "status":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		enabled, _ := h.dm.Settings().Get(domain.KeySchedEnabled)
		statusText := "متوقفة ⏸️"
		if enabled == "true" {
			statusText = "تشغيل ✅"
		}
		h.reply(msg.Chat.ID, "حالة الجدولة: "+statusText)

	case "setorder":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		parts := strings.Fields(msg.CommandArguments())
		if len(parts) < 2 {
			h.reply(msg.Chat.ID, "الاستخدام: /setorder <رقم> <YYYY/MM/DD>")
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeyOrderNumber, parts[0])
		h.setSetting(msg.Chat.ID, domain.KeyOrderDate, parts[1])
		h.reply(msg.Chat.ID, "✅ تم تحديث الأمر الجامعي.")

	case "setnow":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		if msg.ReplyToMessage == nil || msg.ReplyToMessage.Text == "" {
			h.reply(msg.Chat.ID, "ارسل /setnow بالرد على رسالة تحتوي النص المطلوب.")
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeyNowMessage, msg.ReplyToMessage.Text)
		h.reply(msg.Chat.ID, "✅ تم حفظ الرسالة الثابتة.")

	case "shownow":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		if err := h.transport.SendLongText(msg.Chat.ID, 0, h.nowMessage(), 3500); err != nil {
			log.Printf("Failed to show static message: %v", err)
		}

	case "diag":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		h.reply(msg.Chat.ID, h.diagText())

	case "resetcursor":
		if !h.isOwner(msg.From.ID) {
			h.reply(msg.Chat.ID, ownerOnlyText)
			return
		}
		md, err := h.dm.Roster().MinDate()
		if err != nil || md == "" {
			h.reply(msg.Chat.ID, "لا توجد بيانات.")
			return
		}
		h.setSetting(msg.Chat.ID, domain.KeyCursorISO, md)
		h.reply(msg.Chat.ID, fmt.Sprintf("✅ المؤشر = %s", md))

	case "whoami":
		h.reply(msg.Chat.ID, fmt.Sprintf("👤 user_id: %d\nchat_id: %d", msg.From.ID, msg.Chat.ID))
	}
}

func (h *BotHandler) setSetting(replyChatID int64, key, value string) {
	var err error
	if value == "" {
		err = h.dm.Settings().Delete(key)
	} else {
		err = h.dm.Settings().Set(key, value)
	}
	if err != nil {
		log.Printf("Failed to store setting %s: %v", key, err)
		h.reply(replyChatID, "حدث خطأ أثناء الحفظ، حاول مجددًا.")
	}
}

func (h *BotHandler) nowMessage() string {
	msg, err := h.dm.Settings().Get(domain.KeyNowMessage)
	if err != nil || msg == "" {
		return defaultNowMessage
	}
	return msg
}

func (h *BotHandler) diagText() string {
	settings := h.dm.Settings()
	get := func(key string) string {
		v, _ := settings.Get(key)
		if v == "" {
			return "-"
		}
		return v
	}

	stats, err := h.dm.Roster().Stats()
	if err != nil || stats == nil {
		stats = &entity.RosterStats{MinDate: "-", MaxDate: "-"}
	}
	minDate, maxDate := stats.MinDate, stats.MaxDate
	if minDate == "" {
		minDate = "-"
	}
	if maxDate == "" {
		maxDate = "-"
	}

	return "🔍 التشخيص:\n" +
		fmt.Sprintf("• target: %s\n", get(domain.KeyTargetChatID)) +
		fmt.Sprintf("• enabled: %s\n", get(domain.KeySchedEnabled)) +
		fmt.Sprintf("• mode: %s, days: %s, time: %s, every_h: %s, every_m: %s\n",
			get(domain.KeySchedMode), get(domain.KeySchedDaysCSV), get(domain.KeySchedTime),
			get(domain.KeySchedEveryHours), get(domain.KeySchedEveryMinutes)) +
		fmt.Sprintf("• span: %s\n", get(domain.KeyPostSpanDays)) +
		fmt.Sprintf("• order: %s / %s\n", get(domain.KeyOrderNumber), get(domain.KeyOrderDate)) +
		fmt.Sprintf("• cursor: %s\n", get(domain.KeyCursorISO)) +
		fmt.Sprintf("• roster: count=%d, min=%s, max=%s", stats.Count, minDate, maxDate)
}

func (h *BotHandler) handleMyChatMember(update *tgbotapi.ChatMemberUpdated) {
	if update.NewChatMember.User == nil || update.NewChatMember.User.ID != h.api.Self.ID {
		return
	}

	switch update.NewChatMember.Status {
	case "member", "administrator":
		h.upsertChat(&update.Chat, "active")
		h.replyMenu(&update.Chat)
	case "left", "kicked":
		h.upsertChat(&update.Chat, "left")
	default:
		h.upsertChat(&update.Chat, "active")
	}
}
