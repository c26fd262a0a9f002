package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
)

const messageNotes = `
🛑 ملاحظات وتعليمات مهمة:
1. الالتزام التام بأوقات الخفارة والتواجد في المواقع المحددة دون تأخير.
2. التوقيع في سجل الخفارات (استعلامات رقم 1) يُعد إجراءً رسميًا ملزمًا.
3. تُمنح إجازة تعويضية لمن يُكلف بالخفارة بعد تقديم طلب رسمي إلى الجهة الإدارية المختصة.

مع خالص التقدير والاحترام،
م. أحمد رحيم صاحب
مسؤول شعبة الدفاع المدني
جامعة جابر بن حيان للعلوم الطبية والصيدلانية`

const emptyPeriodMarker = "\n(لا توجد أسماء ضمن هذه الفترة)"

type messageService struct {
	dm contract.DataManager
}

func newMessage(dm contract.DataManager) *messageService {
	return &messageService{dm: dm}
}

type collegeGroup struct {
	college string
	names   []string
}

type dateGroup struct {
	colleges []*collegeGroup
}

// BuildPeriodMessage renders the announcement for the window
// [start, start+spanDays-1]: a single-day or period header, one subsection
// per (date, college) pair in chronological then first-seen order, and the
// fixed closing notice. Windows without any rows render an explicit marker
// instead of being skipped.
func (s *messageService) BuildPeriodMessage(orderNo, orderDate string, start time.Time, spanDays int) (string, error) {
	end := start.AddDate(0, 0, spanDays-1)

	records, err := s.dm.Roster().Range(isoDate(start), isoDate(end))
	if err != nil {
		return "", err
	}

	groups := make(map[string]*dateGroup)
	for _, r := range records {
		g, ok := groups[r.Date]
		if !ok {
			g = &dateGroup{}
			groups[r.Date] = g
		}
		college := r.College
		if college == "" {
			college = domain.UnspecifiedCollege
		}
		var cg *collegeGroup
		for _, existing := range g.colleges {
			if existing.college == college {
				cg = existing
				break
			}
		}
		if cg == nil {
			cg = &collegeGroup{college: college}
			g.colleges = append(g.colleges, cg)
		}
		cg.names = append(cg.names, r.Name)
	}

	var header string
	if spanDays == 1 {
		header = fmt.Sprintf(`📄 جدول خفارات السلامة والدفاع المدني
ليوم %s %s

السلام عليكم ورحمة الله وبركاته،
السادة منتسبو جامعة جابر بن حيان للعلوم الطبية والصيدلانية المحترمون،
تحية طيبة وبعد...

استنادًا إلى الأمر الجامعي المرقم (%s) والصادر بتاريخ %s، نرفق لكم فيما يلي جدول خفارات السلامة والدفاع المدني:`,
			arabicDayName(start), formatDMY(start), orderNo, orderDate)
	} else {
		header = fmt.Sprintf(`📄 جدول خفارات السلامة والدفاع المدني
للفترة من يوم %s %s ولغاية %s %s

السلام عليكم ورحمة الله وبركاته،
السادة منتسبو جامعة جابر بن حيان للعلوم الطبية والصيدلانية المحترمون،
تحية طيبة وبعد...

استنادًا إلى الأمر الجامعي المرقم (%s) والصادر بتاريخ %s، نرفق لكم فيما يلي جدول خفارات السلامة والدفاع المدني لكلية العلوم الطبية والصيدلة:`,
			arabicDayName(start), formatDMY(start), arabicDayName(end), formatDMY(end), orderNo, orderDate)
	}

	var body strings.Builder
	for i := 0; i < spanDays; i++ {
		d := start.AddDate(0, 0, i)
		g, ok := groups[isoDate(d)]
		if !ok {
			continue
		}
		for _, cg := range g.colleges {
			body.WriteString(fmt.Sprintf("\n🔹 %s %s – %s\n%s\n",
				arabicDayName(d), formatDMY(d), cg.college, strings.Join(cg.names, "\n")))
		}
	}

	if body.Len() == 0 {
		return header + emptyPeriodMarker + messageNotes, nil
	}
	return header + body.String() + messageNotes, nil
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatDMY(t time.Time) string {
	return t.Format("02/01/2006")
}

func arabicDayName(t time.Time) string {
	return domain.ArabicWeekdayNames[int(t.Weekday())]
}
