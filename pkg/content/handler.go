package content

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type ModuleDTO struct {
	ExternalId      string         `json:"externalId"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Level           string         `json:"level"`
	DurationMinutes int            `json:"durationMinutes"`
	Topics          []string       `json:"topics"`
	Content         string         `json:"content,omitempty"`
	Presentation    *AttachmentDTO `json:"presentation,omitempty"`
	Document        *AttachmentDTO `json:"document,omitempty"`
}

type ExerciseDTO struct {
	ExternalId  string         `json:"externalId"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Media       *AttachmentDTO `json:"media,omitempty"`
}

type AttachmentDTO struct {
	Title       string `json:"title,omitempty"`
	Url         string `json:"url"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListModules godoc
// @Summary List training modules
// @Description Retrieve the full published module catalog
// @Tags Content
// @Produce json
// @Success 200 {array} ModuleDTO
// @Router /api/content/module [get]
func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	modules, err := h.catalog.ListAllModules(r.Context())
	if err != nil {
		// Reads degrade to an empty list; the cause stays in the logs.
		log.Errorf("failed to list modules from content service: %v", err)
		modules = nil
	}

	modulesDTO := make([]ModuleDTO, 0, len(modules))
	for _, m := range modules {
		modulesDTO = append(modulesDTO, ModuleToDTO(m))
	}
	if err := json.NewEncoder(w).Encode(modulesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListExercises godoc
// @Summary List exercises
// @Description Retrieve the full published exercise catalog
// @Tags Content
// @Produce json
// @Success 200 {array} ExerciseDTO
// @Router /api/content/exercise [get]
func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	exercises, err := h.catalog.ListAllExercises(r.Context())
	if err != nil {
		log.Errorf("failed to list exercises from content service: %v", err)
		exercises = nil
	}

	exercisesDTO := make([]ExerciseDTO, 0, len(exercises))
	for _, e := range exercises {
		exercisesDTO = append(exercisesDTO, ExerciseToDTO(e))
	}
	if err := json.NewEncoder(w).Encode(exercisesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ModuleToDTO(m Module) ModuleDTO {
	topics := m.Topics
	if topics == nil {
		topics = []string{}
	}
	return ModuleDTO{
		ExternalId:      m.ExternalId,
		Title:           m.Title,
		Description:     m.Description,
		Level:           string(m.Level),
		DurationMinutes: m.DurationMinutes,
		Topics:          topics,
		Content:         m.Content,
		Presentation:    attachmentToDTO(m.Presentation),
		Document:        attachmentToDTO(m.Document),
	}
}

func ExerciseToDTO(e Exercise) ExerciseDTO {
	return ExerciseDTO{
		ExternalId:  e.ExternalId,
		Title:       e.Title,
		Description: e.Description,
		Media:       attachmentToDTO(e.Media),
	}
}

func attachmentToDTO(a *Attachment) *AttachmentDTO {
	if a == nil {
		return nil
	}
	return &AttachmentDTO{
		Title:       a.Title,
		Url:         a.Url,
		FileName:    a.FileName,
		ContentType: a.ContentType,
	}
}
