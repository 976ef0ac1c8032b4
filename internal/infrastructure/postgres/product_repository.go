package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productColumns: site_id, project_no, {slot}_model, {slot}_qty..., updated_at.
var productColumns = func() []string {
	cols := []string{"site_id", "project_no"}
	for _, slot := range entity.ProductSlots {
		cols = append(cols, slot+"_model", slot+"_qty")
	}
	return append(cols, "updated_at")
}()

// ProductRepo productos por obra; las ranuras se mapean a pares de columnas.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.SiteProduct, error) {
	p := &entity.SiteProduct{Slots: make(map[string]entity.ProductSlot, len(entity.ProductSlots))}
	models := make([]string, len(entity.ProductSlots))
	qtys := make([]int, len(entity.ProductSlots))
	dest := []any{&p.SiteID, &p.ProjectNo}
	for i := range entity.ProductSlots {
		dest = append(dest, &models[i], &qtys[i])
	}
	dest = append(dest, &p.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	for i, slot := range entity.ProductSlots {
		p.Slots[slot] = entity.ProductSlot{Model: models[i], Quantity: qtys[i]}
	}
	return p, nil
}

// Get devuelve los productos de la obra o nil.
func (r *ProductRepo) Get(ctx context.Context, siteID int64) (*entity.SiteProduct, error) {
	list, err := r.ListBySiteIDs(ctx, []int64{siteID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Upsert escribe la fila única de productos de la obra.
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.SiteProduct) error {
	placeholders := make([]string, len(productColumns))
	for i := range productColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	var sets []string
	for _, c := range productColumns[1:] {
		sets = append(sets, c+" = EXCLUDED."+c)
	}
	query := `INSERT INTO site_products (` + strings.Join(productColumns, ", ") + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)
		ON CONFLICT (site_id) DO UPDATE SET ` + strings.Join(sets, ", ")

	args := []any{p.SiteID, p.ProjectNo}
	for _, slot := range entity.ProductSlots {
		s := p.Slot(slot)
		args = append(args, s.Model, s.Quantity)
	}
	args = append(args, p.UpdatedAt)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert site products: %w", err)
	}
	return nil
}

// ListBySiteIDs productos de varias obras.
func (r *ProductRepo) ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.SiteProduct, error) {
	query := `SELECT ` + strings.Join(productColumns, ", ") + ` FROM site_products WHERE site_id = ANY($1) ORDER BY site_id`
	rows, err := r.q.Query(ctx, query, siteIDs)
	if err != nil {
		return nil, fmt.Errorf("list site products: %w", err)
	}
	defer rows.Close()
	var list []*entity.SiteProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site products: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
