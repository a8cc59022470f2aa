package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// MetricsRefreshWorker rederiva as métricas de todas as campanhas direto
// dos agregados SQL, de tempos em tempos. O recompute por requisição lê e
// grava em dois statements sem lock, então recomputes concorrentes da mesma
// campanha podem perder uma atualização; este worker corrige os números na
// passada seguinte.
type MetricsRefreshWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewMetricsRefreshWorker(db *sql.DB) *MetricsRefreshWorker {
	return &MetricsRefreshWorker{
		db:           db,
		tickInterval: 5 * time.Minute,
	}
}

func (w *MetricsRefreshWorker) Start(ctx context.Context) {
	log.Println("🕒 Metrics Refresh Worker iniciado (5min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Metrics Refresh Worker encerrado")
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *MetricsRefreshWorker) refreshAll(ctx context.Context) {
	query := `
		UPDATE campaigns
		SET
			total_leads = sub.total,
			open_rate = CASE WHEN sub.total > 0
				THEN ROUND(sub.opened::numeric / sub.total * 100, 2) ELSE 0 END,
			conversion_rate = CASE WHEN sub.total > 0
				THEN ROUND(sub.converted::numeric / sub.total * 100, 2) ELSE 0 END,
			click_through_rate = CASE WHEN sub.opened > 0
				THEN ROUND(sub.converted::numeric / sub.opened * 100, 2) ELSE 0 END
		FROM (
			SELECT c.id,
			       COUNT(l.id) AS total,
			       COUNT(l.id) FILTER (WHERE l.has_opened_email) AS opened,
			       COUNT(l.id) FILTER (WHERE l.has_converted) AS converted
			FROM campaigns c
			LEFT JOIN leads l ON l.campaign_assignment = c.id
			GROUP BY c.id
		) sub
		WHERE campaigns.id = sub.id
		  AND (campaigns.total_leads IS DISTINCT FROM sub.total
		       OR campaigns.open_rate IS DISTINCT FROM
		          CASE WHEN sub.total > 0 THEN ROUND(sub.opened::numeric / sub.total * 100, 2) ELSE 0 END
		       OR campaigns.conversion_rate IS DISTINCT FROM
		          CASE WHEN sub.total > 0 THEN ROUND(sub.converted::numeric / sub.total * 100, 2) ELSE 0 END
		       OR campaigns.click_through_rate IS DISTINCT FROM
		          CASE WHEN sub.opened > 0 THEN ROUND(sub.converted::numeric / sub.opened * 100, 2) ELSE 0 END)
		RETURNING campaigns.id
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro no refresh de métricas: %v", err)
		return
	}
	defer rows.Close()

	corrected := 0
	for rows.Next() {
		var campaignID int
		if err := rows.Scan(&campaignID); err != nil {
			log.Printf("⚠️ Erro ao escanear campanha corrigida: %v", err)
			continue
		}
		log.Printf("🔧 Métricas corrigidas: campaign=%d", campaignID)
		corrected++
	}

	if corrected > 0 {
		log.Printf("✅ %d campanha(s) com métricas corrigidas", corrected)
	}
}
