package repository

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrClaimNotFound    = errors.New("claim not found")
	ErrEvidenceNotFound = errors.New("evidence source not found")
)

// CatalogRepository provides read-only access to products, claims and the
// evidence behind them. It is loaded once and never modified afterwards.
type CatalogRepository struct {
	products []*entities.Product
	byID     map[entities.ProductID]*entities.Product
	claims   map[entities.ClaimID]*entities.Claim
	evidence map[string]*entities.EvidenceSource
}

type catalogFile struct {
	Products []*entities.Product                `yaml:"products"`
	Evidence map[string]*entities.EvidenceSource `yaml:"evidence"`
	Claims   map[string]*entities.Claim          `yaml:"claims"`
}

// NewCatalogRepository loads the catalog from a YAML file.
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return ParseCatalog(data)
}

// ParseCatalog builds a catalog from YAML bytes. Every recommendable
// product must be present exactly once.
func ParseCatalog(data []byte) (*CatalogRepository, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog YAML: %w", err)
	}

	r := &CatalogRepository{
		products: file.Products,
		byID:     make(map[entities.ProductID]*entities.Product, len(file.Products)),
		claims:   make(map[entities.ClaimID]*entities.Claim, len(file.Claims)),
		evidence: make(map[string]*entities.EvidenceSource, len(file.Evidence)),
	}

	for _, p := range file.Products {
		if p == nil {
			return nil, errors.New("catalog contains an empty product entry")
		}
		if !slices.Contains(entities.ProductIDs, p.ID) {
			return nil, fmt.Errorf("unexpected product id %q", p.ID)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		r.byID[p.ID] = p
	}
	for _, id := range entities.ProductIDs {
		if _, ok := r.byID[id]; !ok {
			return nil, fmt.Errorf("%w: %q missing from catalog", ErrProductNotFound, id)
		}
	}

	for id, c := range file.Claims {
		if c == nil {
			c = &entities.Claim{}
		}
		c.ID = entities.ClaimID(id)
		r.claims[c.ID] = c
	}
	for id, e := range file.Evidence {
		if e == nil {
			e = &entities.EvidenceSource{}
		}
		e.ID = id
		r.evidence[id] = e
	}

	return r, nil
}

// GetProductByID returns the product with the given id.
func (r *CatalogRepository) GetProductByID(id entities.ProductID) (*entities.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}
	return p, nil
}

// Products returns every product in catalog order.
func (r *CatalogRepository) Products() []*entities.Product {
	return slices.Clone(r.products)
}

// GetClaim returns the claim with the given id.
func (r *CatalogRepository) GetClaim(id entities.ClaimID) (*entities.Claim, error) {
	c, ok := r.claims[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClaimNotFound, id)
	}
	return c, nil
}

// GetEvidenceSources resolves evidence ids in the given order.
func (r *CatalogRepository) GetEvidenceSources(ids []string) ([]entities.EvidenceSource, error) {
	result := make([]entities.EvidenceSource, 0, len(ids))

	for _, id := range ids {
		e, ok := r.evidence[id]
		if !ok {
			return nil, fmt.Errorf("get evidence %q: %w", id, ErrEvidenceNotFound)
		}
		result = append(result, *e)
	}

	return result, nil
}

// ValidateClaimCoverage reports claims without evidence or with evidence
// ids that are not registered. Messages are ordered by claim id.
func (r *CatalogRepository) ValidateClaimCoverage() []string {
	ids := make([]entities.ClaimID, 0, len(r.claims))
	for id := range r.claims {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var errs []string
	for _, id := range ids {
		c := r.claims[id]
		if len(c.EvidenceIDs) == 0 {
			errs = append(errs, fmt.Sprintf("%s: missing evidence", id))
		}
		for _, eid := range c.EvidenceIDs {
			if _, ok := r.evidence[eid]; !ok {
				errs = append(errs, fmt.Sprintf("%s: unknown evidence %q", id, eid))
			}
		}
	}

	return errs
}
