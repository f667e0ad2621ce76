package mapper

import (
	"time"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/model"
)

type PetMapper struct{}

func NewPetMapper() *PetMapper {
	return &PetMapper{}
}

func (m *PetMapper) ToEntity(p *model.Pet) *entity.Pet {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Pet{
		Id:        p.Id,
		Name:      p.Name,
		Type:      p.Type,
		Breed:     p.Breed,
		Age:       p.Age,
		Weight:    p.Weight,
		OwnerId:   p.OwnerId,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *PetMapper) ToModel(p *entity.Pet) *model.Pet {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Pet{
		Id:        p.Id,
		Name:      p.Name,
		Type:      p.Type,
		Breed:     p.Breed,
		Age:       p.Age,
		Weight:    p.Weight,
		OwnerId:   p.OwnerId,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *PetMapper) ToEntities(pets []*model.Pet) []*entity.Pet {
	entities := make([]*entity.Pet, len(pets))
	for i, p := range pets {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
