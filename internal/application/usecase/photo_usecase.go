package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/application/ports"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// MaxPhotoBytes tamaño máximo aceptado por foto.
const MaxPhotoBytes = 20 << 20

// allowedPhotoTypes tipo MIME admitido → extensión de la clave almacenada.
// La extensión del nombre enviado por el cliente nunca se usa.
var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// PhotoUpload archivo recibido por multipart.
type PhotoUpload struct {
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PhotoUseCase fotos de obra: metadatos en el repositorio y binario en el almacenamiento de objetos.
type PhotoUseCase struct {
	repo    repository.PhotoRepository
	objects ports.ObjectStorage
	guard   *access.Guard
	log     zerolog.Logger
	now     func() time.Time
}

// NewPhotoUseCase construye el caso de uso.
func NewPhotoUseCase(repo repository.PhotoRepository, objects ports.ObjectStorage, guard *access.Guard, log zerolog.Logger) *PhotoUseCase {
	return &PhotoUseCase{repo: repo, objects: objects, guard: guard, log: log, now: time.Now}
}

// List página de fotos no borradas, más recientes primero.
func (uc *PhotoUseCase) List(ctx context.Context, id access.Identity, siteID int64, page dto.PageRequest) (*dto.PhotoPageResponse, error) {
	if _, err := uc.guard.Site(ctx, id, siteID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	photos, err := uc.repo.ListPage(ctx, siteID, page.PageSize+1, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.PhotoPageResponse{Page: page.Page, PageSize: page.PageSize}
	if len(photos) > page.PageSize {
		out.HasMore = true
		photos = photos[:page.PageSize]
	}
	out.Items = make([]*dto.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out.Items = append(out.Items, ToPhotoResponse(p))
	}
	return out, nil
}

// Upload guarda el archivo bajo sites/{id}/{yyyy}/{mm}/{uuid}{ext} y registra los metadatos.
// Si el registro falla se elimina el objeto subido.
func (uc *PhotoUseCase) Upload(ctx context.Context, id access.Identity, siteID int64, in PhotoUpload) (*dto.PhotoEnvelope, error) {
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}
	if in.Body == nil || in.Size <= 0 {
		return nil, fmt.Errorf("%w: file es requerido", domain.ErrInvalidInput)
	}
	if in.Size > MaxPhotoBytes {
		return nil, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidInput, MaxPhotoBytes)
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(in.ContentType, ";")[0]))
	ext, ok := allowedPhotoTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: tipo de archivo no admitido %q", domain.ErrInvalidInput, in.ContentType)
	}

	now := uc.now().UTC()
	key := fmt.Sprintf("sites/%d/%04d/%02d/%s%s", site.ID, now.Year(), int(now.Month()), uuid.NewString(), ext)
	if err := uc.objects.Put(ctx, key, in.Body, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("subir foto: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSuffix(path.Base(in.Filename), path.Ext(in.Filename))
	}
	photo := &entity.Photo{
		SiteID:      site.ID,
		Title:       title,
		StoragePath: key,
		URL:         uc.objects.PublicURL(key),
		UploadedAt:  now,
		CreatedBy:   id.UserID,
	}
	if err := uc.repo.Create(ctx, photo); err != nil {
		if rmErr := uc.objects.Remove(ctx, key); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("key", key).Msg("no se pudo eliminar el objeto huérfano")
		}
		return nil, err
	}
	return &dto.PhotoEnvelope{Message: "foto subida", Photo: ToPhotoResponse(photo)}, nil
}

// Delete borrado lógico; el objeto se conserva.
func (uc *PhotoUseCase) Delete(ctx context.Context, id access.Identity, siteID, photoID int64) error {
	if _, err := uc.guard.Site(ctx, id, siteID); err != nil {
		return err
	}
	p, err := uc.repo.GetByID(ctx, siteID, photoID)
	if err != nil {
		return err
	}
	if p == nil || p.Deleted() {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, siteID, photoID)
}

// ToPhotoResponse mapea la entidad a la salida HTTP.
func ToPhotoResponse(p *entity.Photo) *dto.PhotoResponse {
	return &dto.PhotoResponse{
		ID:         p.ID,
		SiteID:     p.SiteID,
		Title:      p.Title,
		URL:        p.URL,
		UploadedAt: p.UploadedAt,
	}
}
