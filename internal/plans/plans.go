// Package plans описывает каталог тарифных планов: лимиты транзакций,
// доступные возможности и цены платных планов.
//
// Каталог неизменяем во время работы, определения планов задаются при сборке.
package plans

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// Unlimited значение лимита без ограничений.
const Unlimited = -1

// Currency валюта всех цен каталога.
const Currency = "BRL"

// Features ограничения и возможности плана.
type Features struct {
	DisplayName       string `json:"name"`
	TransactionsLimit int    `json:"transactions_limit"` // -1 означает без ограничений
	Reports           bool   `json:"reports"`
	Automation        bool   `json:"automation"`
	MultiUser         bool   `json:"multi_user"`
}

// Unlimited сообщает, снят ли лимит транзакций.
func (f Features) Unlimited() bool {
	return f.TransactionsLimit == Unlimited
}

// LimitReached сообщает, достигло ли количество транзакций лимита плана.
func (f Features) LimitReached(count int) bool {
	return !f.Unlimited() && count >= f.TransactionsLimit
}

// Offer платный план в том виде, в котором он показывается на странице выбора.
type Offer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Highlights  []string        `json:"features"`
	Popular     bool            `json:"popular"`
}

var catalog = map[string]Features{
	models.PlanTrial: {
		DisplayName:       "Teste Grátis",
		TransactionsLimit: 10,
	},
	models.PlanMEI: {
		DisplayName:       "Plano MEI",
		TransactionsLimit: 100,
		Reports:           true,
	},
	models.PlanProfessional: {
		DisplayName:       "Plano Profissional",
		TransactionsLimit: 500,
		Reports:           true,
		Automation:        true,
	},
	models.PlanEnterprise: {
		DisplayName:       "Plano Empresarial",
		TransactionsLimit: Unlimited,
		Reports:           true,
		Automation:        true,
		MultiUser:         true,
	},
}

var offers = []Offer{
	{
		ID:          models.PlanMEI,
		Name:        "Plano MEI",
		Price:       decimal.NewFromInt(49),
		Currency:    Currency,
		Description: "Perfeito para Microempreendedores Individuais",
		Highlights: []string{
			"Até 100 transações/mês",
			"Relatórios básicos",
			"Controle de caixa",
			"Contas a pagar/receber",
			"Suporte por email",
		},
	},
	{
		ID:          models.PlanProfessional,
		Name:        "Plano Profissional",
		Price:       decimal.NewFromInt(99),
		Currency:    Currency,
		Description: "Para pequenos negócios em crescimento",
		Highlights: []string{
			"Até 500 transações/mês",
			"Relatórios avançados",
			"Automações inteligentes",
			"Integração Mercado Pago",
			"Análise de impostos",
			"Suporte prioritário",
		},
		Popular: true,
	},
	{
		ID:          models.PlanEnterprise,
		Name:        "Plano Empresarial",
		Price:       decimal.NewFromInt(199),
		Currency:    Currency,
		Description: "Para empresas que precisam de mais",
		Highlights: []string{
			"Transações ilimitadas",
			"Multiusuário",
			"Acesso para contador",
			"Relatórios personalizados",
			"API completa",
			"Suporte 24/7",
		},
	},
}

// FeaturesOf возвращает возможности плана. Для неизвестного идентификатора
// возвращается пробный план, функция никогда не завершается ошибкой.
func FeaturesOf(planID string) Features {
	if f, ok := catalog[planID]; ok {
		return f
	}
	return catalog[models.PlanTrial]
}

// IsPaid сообщает, является ли идентификатор одним из платных планов.
func IsPaid(planID string) bool {
	_, ok := OfferOf(planID)
	return ok
}

// OfferOf возвращает цену и описание платного плана.
func OfferOf(planID string) (Offer, bool) {
	for _, o := range offers {
		if o.ID == planID {
			return o, true
		}
	}
	return Offer{}, false
}

// PaidPlans возвращает платные планы в порядке отображения.
func PaidPlans() []Offer {
	res := make([]Offer, len(offers))
	copy(res, offers)
	return res
}
