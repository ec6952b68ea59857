package pets

import (
	"context"
	"errors"

	"softpet/internal/platform/outcome"
)

// authorize carga la mascota y exige que userID sea el dueño.
// Inexistente => 404; de otro usuario => 403 sin tocar nada.
func (s *Service) authorize(ctx context.Context, petID, userID int64) (Pet, *Result) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r := fail(outcome.NotFound, MsgNotFound)
			return Pet{}, &r
		}
		s.log.Error("load pet failed", map[string]any{"error": err, "pet_id": petID})
		r := fail(outcome.Internal, MsgSaveFailed)
		return Pet{}, &r
	}

	if !p.OwnedBy(userID) {
		s.log.Info("ownership check denied", map[string]any{"pet_id": petID, "user_id": userID, "owner_user_id": p.OwnerUserID})
		r := fail(outcome.Forbidden, MsgForbidden)
		return Pet{}, &r
	}
	return p, nil
}
