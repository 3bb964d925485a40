package schedule

// ===============================
// Precificação na criação
// ===============================

type PriceQuote struct {
	Price          float64
	OriginalPrice  float64
	AdditionalFees float64
	DiscountAmount float64
}

// QuotePrice calcula o preço do agendamento. Atendimento a domicílio
// soma a taxa do serviço quando cadastrada; desconto fica em zero
// (aplicação de cupom acontece em outra etapa).
func QuotePrice(servicePrice float64, homeServiceFee *float64, apType AppointmentType) PriceQuote {
	fees := 0.0
	if apType == TypeAtHome && homeServiceFee != nil {
		fees = *homeServiceFee
	}

	return PriceQuote{
		Price:          servicePrice + fees,
		OriginalPrice:  servicePrice,
		AdditionalFees: fees,
		DiscountAmount: 0,
	}
}
