package adapters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/aggregation"
	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

const (
	topExpensesInPrompt = 5
	recentTxnsInPrompt  = 10
	promptNoDescription = "Sin descripción"
)

const adviceSystemPrompt = `Eres un experto asesor financiero personal especializado en análisis de estados de cuenta y gestión de finanzas personales.

Tu objetivo es analizar los datos financieros del usuario y proporcionar recomendaciones inteligentes, prácticas y accionables.

REGLAS IMPORTANTES:
1. Analiza patrones de gasto, ingresos y ahorros
2. Identifica oportunidades de optimización
3. Detecta riesgos financieros potenciales
4. Proporciona consejos específicos y personalizados
5. Usa un tono profesional pero amigable
6. Sé conciso y claro en tus recomendaciones

FORMATO DE RESPUESTA:
Debes responder SOLO con un objeto JSON válido con esta estructura:
{
  "advices": [
    {
      "tipo_alerta": "gasto_excesivo | oportunidad_ahorro | riesgo_liquidez | desbalance_financiero | categoria_dominante | patron_anomalo | meta_ahorro | optimizacion",
      "mensaje": "mensaje claro y conciso del consejo",
      "prioridad": "baja|normal|alta|critica"
    }
  ]
}

PRIORIDADES:
- "critica": Problemas financieros graves que requieren acción inmediata (ej: gastos superando ingresos, deuda excesiva)
- "alta": Situaciones importantes que deben atenderse pronto (ej: gastos innecesarios, oportunidades de ahorro)
- "normal": Recomendaciones generales de mejora
- "baja": Sugerencias opcionales o informativas`

// buildAdvicePrompt renders the analysis prompt for one period. The output only
// depends on the request, so the same data always yields the same prompt.
func buildAdvicePrompt(request *adapter.AdviceRequest) string {
	summary := request.Summary
	if summary == nil {
		summary = &entity.KPISummary{}
	}
	totals := aggregation.SummarizeTransactions(request.Transactions)

	var sb strings.Builder

	fmt.Fprintf(&sb, "Analiza los siguientes datos financieros del usuario para el período %s:\n\n", request.Period)

	sb.WriteString("KPIs FINANCIEROS:\n")
	fmt.Fprintf(&sb, "- Ingresos totales: €%s\n", money(summary.TotalIncome))
	fmt.Fprintf(&sb, "- Gastos totales: €%s\n", money(summary.TotalExpense))
	fmt.Fprintf(&sb, "- Balance: €%s\n", money(summary.Balance))
	fmt.Fprintf(&sb, "- Porcentaje de ahorro: %s%%\n", summary.SavingsPercent.StringFixed(1))
	fmt.Fprintf(&sb, "- Liquidez: €%s\n", money(summary.Liquidity))
	fmt.Fprintf(&sb, "- Endeudamiento: %s%%\n\n", summary.DebtRatio.StringFixed(2))

	sb.WriteString("ESTADÍSTICAS DE TRANSACCIONES:\n")
	fmt.Fprintf(&sb, "- Total de transacciones: %d\n", len(request.Transactions))
	fmt.Fprintf(&sb, "- Total ingresos: €%s\n", money(totals.Income))
	fmt.Fprintf(&sb, "- Total gastos: €%s\n\n", money(totals.Expense))

	sb.WriteString("TOP 5 CATEGORÍAS DE GASTO:\n")
	for i, g := range aggregation.TopExpenses(request.Transactions, topExpensesInPrompt) {
		fmt.Fprintf(&sb, "%d. %s: €%s\n", i+1, g.Label, money(g.Amount))
	}

	fmt.Fprintf(&sb, "\nTRANSACCIONES RECIENTES (últimas %d):\n", recentTxnsInPrompt)
	for _, t := range aggregation.MostRecent(request.Transactions, recentTxnsInPrompt) {
		description := strings.TrimSpace(t.Description)
		if description == "" {
			description = promptNoDescription
		}
		fmt.Fprintf(&sb, "- [%s] €%s - %s (%s)\n",
			strings.ToUpper(string(t.Type)), money(t.Amount), description, t.Date.Format(valueobject.DateLayout))
	}

	sb.WriteString(`
Analiza estos datos y genera recomendaciones financieras inteligentes. Considera:
1. Si los gastos superan los ingresos
2. Patrones de gasto excesivo en ciertas categorías
3. Oportunidades de ahorro
4. Riesgos de liquidez
5. Proporción saludable de ahorro
6. Comportamientos financieros positivos para reforzar

IMPORTANTE: Responde SOLO con el JSON válido, sin texto adicional.`)

	return sb.String()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type adviceReply struct {
	Advices []struct {
		TipoAlerta string `json:"tipo_alerta"`
		Mensaje    string `json:"mensaje"`
		Prioridad  string `json:"prioridad"`
	} `json:"advices"`
}

// parseAdviceReply decodes the service reply, tolerating a markdown code fence around the JSON.
// Items without a message are dropped; unknown priorities become normal.
func parseAdviceReply(text string) ([]*adapter.GeneratedAdvice, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, fmt.Errorf("empty advice reply")
	}

	var reply adviceReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, fmt.Errorf("failed to parse advice reply: %w", err)
	}

	advices := make([]*adapter.GeneratedAdvice, 0, len(reply.Advices))
	for _, a := range reply.Advices {
		message := strings.TrimSpace(a.Mensaje)
		if message == "" {
			continue
		}
		alertType := strings.TrimSpace(a.TipoAlerta)
		if alertType == "" {
			alertType = entity.DefaultAlertType
		}
		advices = append(advices, &adapter.GeneratedAdvice{
			AlertType: alertType,
			Message:   message,
			Priority:  entity.CoerceAdvicePriority(a.Prioridad),
		})
	}

	return advices, nil
}
