package handlers

import (
	"fmt"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func mainMenuKeyboard(chat *tgbotapi.Chat) tgbotapi.InlineKeyboardMarkup {
	inGroup := chat.IsGroup() || chat.IsSuperGroup()

	var rows [][]tgbotapi.InlineKeyboardButton
	if inGroup {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📍 اجعل هذا الكروب هدفًا", "t_set_current"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎯 اختيار هدف", "t_choose"),
		tgbotapi.NewInlineKeyboardButtonData("🎯 عرض الهدف", "t_show"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏱️ إعداد/تعديل الجدولة", "sched_setup"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("▶️ تشغيل الجدولة", "sched_enable"),
		tgbotapi.NewInlineKeyboardButtonData("⏹️ إيقاف الجدولة", "sched_disable"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔔 انشر الآن (اختبار)", "sched_run_now"),
	))
	if inGroup {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔧 اضبط هذا الموضوع (Topics)", "topic_set_here"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📂 تحميل ملف جدول", "file_help"),
		tgbotapi.NewInlineKeyboardButtonData("🧾 معاينة شيت (نصي)", "sheet_help"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📚 قائمة المجموعات", "groups_list"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func modeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗓️ حسب أيام الأسبوع", "sm_weekly"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 مرة يوميًا", "sm_daily"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏳ كل N ساعة", "sm_every"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏱️ كل N دقيقة (اختبار)", "sm_every_min"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ القائمة", "go_menu"),
		),
	)
}

func daysKeyboard(state *entity.WizardState) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for day := domain.Sunday; day <= domain.Saturday; day++ {
		label := "⬜ " + domain.ArabicWeekdayNames[day]
		if state.HasDay(day) {
			label = "✅ " + domain.ArabicWeekdayNames[day]
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("dsel:%d", day)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		buttons[:4],
		buttons[4:],
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("تم الاختيار ▶️", "days_done"),
		),
	)
}

func groupsKeyboard(page, total int, chats []*entity.Chat) tgbotapi.InlineKeyboardMarkup {
	pages := (total + groupsPageSize - 1) / groupsPageSize
	if pages < 1 {
		pages = 1
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, chat := range chats {
		title := chat.Title
		if title == "" {
			title = "(بدون عنوان)"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s — %s", title, chat.Type),
				fmt.Sprintf("pick:%d", chat.ChatID),
			),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ السابق", fmt.Sprintf("pg:%d", page-1)))
	}
	if page < pages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("التالي ▶️", fmt.Sprintf("pg:%d", page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ القائمة", "go_menu"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmScheduleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ ابدأ الجدولة", "sched_start"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ إلغاء", "sched_cancel"),
		),
	)
}
