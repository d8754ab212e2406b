package web

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"bizcard/internal/adapters/vcard"
	"bizcard/internal/domain"
	"bizcard/internal/usecases"
	"bizcard/pkg/log"
	"bizcard/pkg/socialurl"
	"bizcard/templates/pages"
)

// snapshotTimeout bounds a snapshot request including the wait for a tab.
const snapshotTimeout = 30 * time.Second

// UseCases groups the application operations the handlers call.
type UseCases struct {
	ListCards      *usecases.ListCardsUseCase
	GetCard        *usecases.GetCardUseCase
	SaveCard       *usecases.SaveCardUseCase
	DeleteCard     *usecases.DeleteCardUseCase
	Visibility     *usecases.SetVisibilityUseCase
	SocialAccounts *usecases.SocialAccountsUseCase
	PublicCard     *usecases.GetPublicCardUseCase
	Snapshot       *usecases.SnapshotCardUseCase
}

// Handlers contains the HTTP handlers for the web application.
type Handlers struct {
	uc      UseCases
	baseURL string
}

// NewHandlers creates a new Handlers instance. baseURL prefixes share links.
func NewHandlers(uc UseCases, baseURL string) *Handlers {
	return &Handlers{uc: uc, baseURL: baseURL}
}

// render is a helper to render templ components.
func render(c *fiber.Ctx, status int, component templ.Component) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return adaptor.HTTPHandler(templ.Handler(component, templ.WithStatus(status)))(c)
}

// renderError renders a full-page error with the status mapped from err.
func (h *Handlers) renderError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.GlobalErrorCtx(c.UserContext(), "page failed", "path", c.Path(), "error", err)
	}
	return render(c, status, pages.Error(friendlyError(err)))
}

// Health reports liveness.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Home renders the landing page with the supported platforms.
func (h *Handlers) Home(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, pages.Home(socialurl.SupportedPlatforms()))
}

// PublicCard renders a published card at its share URL.
func (h *Handlers) PublicCard(c *fiber.Ctx) error {
	card, err := h.publicCard(c)
	if err != nil {
		return h.renderError(c, err)
	}
	return render(c, fiber.StatusOK, pages.Card(card, domain.ShareURL(h.baseURL, card.ID)))
}

// VCard downloads a published card as a contact file.
func (h *Handlers) VCard(c *fiber.Ctx) error {
	card, err := h.publicCard(c)
	if err != nil {
		return writeAPIError(c, err)
	}

	var buf bytes.Buffer
	if err := vcard.Encode(&buf, card, domain.ShareURL(h.baseURL, card.ID)); err != nil {
		return writeAPIError(c, err)
	}

	// Attachment guesses a type from the extension; override it after.
	c.Attachment(vcard.FileName(card))
	c.Set(fiber.HeaderContentType, vcard.ContentType)
	return c.Send(buf.Bytes())
}

// Snapshot returns a PNG rendering of a published card.
func (h *Handlers) Snapshot(c *fiber.Ctx) error {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return writeAPIError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), snapshotTimeout)
	defer cancel()

	png, err := h.uc.Snapshot.Execute(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = domain.ErrSnapshotFailed
		}
		return writeAPIError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Send(png)
}

func (h *Handlers) publicCard(c *fiber.Ctx) (*domain.BusinessCard, error) {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return nil, err
	}
	return h.uc.PublicCard.Execute(c.UserContext(), id)
}

// Platforms lists the supported platform keys.
func (h *Handlers) Platforms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"platforms": socialurl.SupportedPlatforms()})
}

// Resolve resolves one platform/username pair from the query string.
func (h *Handlers) Resolve(c *fiber.Ctx) error {
	res := socialurl.Generate(c.Query("platform"), c.Query("username"))
	return c.JSON(toResolveJSON(res))
}

// Preview resolves the rows of an unsaved card form for live display.
func (h *Handlers) Preview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return writeAPIError(c, domain.ErrInvalidInput)
	}

	entries := make([]socialurl.Entry, len(req.SocialAccounts))
	for i, s := range req.SocialAccounts {
		entries[i] = socialurl.Entry{Platform: s.Platform, Username: s.Username}
	}

	results := socialurl.GenerateMultiple(entries)
	out := make([]resolveJSON, len(results))
	for i, r := range results {
		out[i] = toResolveJSON(r)
	}
	return c.JSON(fiber.Map{"social_accounts": out})
}

// ListCards lists the caller's cards, newest first.
func (h *Handlers) ListCards(c *fiber.Ctx) error {
	cards, err := h.uc.ListCards.Execute(c.UserContext(), UserID(c))
	if err != nil {
		return writeAPIError(c, err)
	}

	out := make([]cardJSON, len(cards))
	for i := range cards {
		out[i] = toCardJSON(&cards[i], h.baseURL)
	}
	return c.JSON(fiber.Map{"cards": out})
}

func (h *Handlers) CreateCard(c *fiber.Ctx) error {
	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return writeAPIError(c, domain.ErrInvalidInput)
	}

	card, err := h.uc.SaveCard.Create(c.UserContext(), UserID(c), req.toInput())
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCardJSON(card, h.baseURL))
}

func (h *Handlers) GetCard(c *fiber.Ctx) error {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return writeAPIError(c, err)
	}

	card, err := h.uc.GetCard.Execute(c.UserContext(), UserID(c), id)
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(toCardJSON(card, h.baseURL))
}

// UpdateCard replaces a card's fields and social account list. Rows that
// carry an id are edited in place; rows without one are added; existing
// accounts missing from the list are removed.
func (h *Handlers) UpdateCard(c *fiber.Ctx) error {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return writeAPIError(c, err)
	}

	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return writeAPIError(c, domain.ErrInvalidInput)
	}

	card, err := h.uc.SaveCard.Update(c.UserContext(), UserID(c), id, req.toInput())
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(toCardJSON(card, h.baseURL))
}

func (h *Handlers) DeleteCard(c *fiber.Ctx) error {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return writeAPIError(c, err)
	}

	if err := h.uc.DeleteCard.Execute(c.UserContext(), UserID(c), id); err != nil {
		return writeAPIError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetVisibility publishes or unpublishes a card. is_public is required.
func (h *Handlers) SetVisibility(c *fiber.Ctx) error {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return writeAPIError(c, err)
	}

	var req visibilityRequest
	if err := c.BodyParser(&req); err != nil || req.IsPublic == nil {
		return writeAPIError(c, domain.ErrInvalidInput)
	}

	card, err := h.uc.Visibility.Execute(c.UserContext(), UserID(c), id, *req.IsPublic)
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(toCardJSON(card, h.baseURL))
}

func (h *Handlers) ToggleVisibility(c *fiber.Ctx) error {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return writeAPIError(c, err)
	}

	card, err := h.uc.Visibility.Toggle(c.UserContext(), UserID(c), id)
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(toCardJSON(card, h.baseURL))
}

func (h *Handlers) AddSocialAccount(c *fiber.Ctx) error {
	id, err := ParseCardID(c, "id")
	if err != nil {
		return writeAPIError(c, err)
	}

	var req socialAccountInputJSON
	if err := c.BodyParser(&req); err != nil {
		return writeAPIError(c, domain.ErrInvalidInput)
	}

	acct, err := h.uc.SocialAccounts.Add(c.UserContext(), UserID(c), id, req.toInput())
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSocialAccountJSON(acct))
}

func (h *Handlers) UpdateSocialAccount(c *fiber.Ctx) error {
	var req socialAccountInputJSON
	if err := c.BodyParser(&req); err != nil {
		return writeAPIError(c, domain.ErrInvalidInput)
	}

	acct, err := h.uc.SocialAccounts.Update(c.UserContext(), UserID(c), c.Params("id"), req.toInput())
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(toSocialAccountJSON(acct))
}

func (h *Handlers) DeleteSocialAccount(c *fiber.Ctx) error {
	if err := h.uc.SocialAccounts.Delete(c.UserContext(), UserID(c), c.Params("id")); err != nil {
		return writeAPIError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
