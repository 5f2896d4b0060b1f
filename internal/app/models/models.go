package models

// ClickEventKind — значение поля event у записи о переходе по лид-ссылке
const ClickEventKind = "click"

// ClickEvent — запись о переходе по лид-ссылке.
// Формат сериализации фиксирован: event, lead, timestamp, ip, ua (ua может быть null)
type ClickEvent struct {
	Event     string  `json:"event"`
	Lead      string  `json:"lead"`
	Timestamp string  `json:"timestamp"`
	IP        string  `json:"ip"`
	UA        *string `json:"ua"`
}

// LeadRoute описывает одну запись таблицы переадресаций
type LeadRoute struct {
	Lead        string `json:"lead"`
	Destination string `json:"destination"`
}

// LeadStats содержит количество переходов по одному лиду
type LeadStats struct {
	Lead   string `json:"lead"`
	Clicks int64  `json:"clicks"`
}

// Stats — ответ внутреннего эндпоинта статистики
type Stats struct {
	Leads  int         `json:"leads"`
	Clicks int64       `json:"clicks"`
	ByLead []LeadStats `json:"by_lead"`
}
