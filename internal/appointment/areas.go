package appointment

import (
	"strings"

	"github.com/despacholegal-ai/intake-platform/internal/model"
)

// Keyword mapping used to derive the practice area from the consultation
// reason. The derivation is silent: the user is never asked to re-specify
// the area during initial collection.
var derivationRules = []struct {
	area     model.PracticeArea
	keywords []string
}{
	{model.AreaLaboral, []string{"despido", "trabajo", "laboral", "empleo", "contrato", "salario", "horario"}},
	{model.AreaFamiliar, []string{"divorcio", "familia", "hijos", "custodia", "pensión"}},
	{model.AreaCivil, []string{"herencia", "testamento", "sucesión"}},
	{model.AreaMercantil, []string{"empresa", "comercial", "mercantil", "sociedad"}},
	{model.AreaAdministrativo, []string{"multa", "sanción", "administrativo"}},
}

// DeriveArea maps a consultation reason to a practice area, defaulting to
// civil law when nothing matches.
func DeriveArea(reason string) model.PracticeArea {
	lower := strings.ToLower(reason)
	for _, rule := range derivationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.area
			}
		}
	}
	return model.AreaCivil
}

// Richer keyword sets used by the orchestrator's fallback menu to name a
// practice area mentioned in free text, with a short blurb.
var detectionRules = []struct {
	area        model.PracticeArea
	keywords    []string
	explanation string
}{
	{model.AreaLaboral, []string{"laboral", "trabajo", "empleo", "despido", "acoso", "contrato laboral", "salario"},
		"El Derecho Laboral abarca temas como despidos, acoso laboral, contratos de trabajo, salarios y condiciones laborales."},
	{model.AreaCivil, []string{"civil", "herencia", "testamento", "sucesión", "contrato civil", "reclamación"},
		"El Derecho Civil incluye herencias, testamentos, sucesiones, contratos civiles y reclamaciones de cantidad."},
	{model.AreaFamiliar, []string{"familiar", "divorcio", "custodia", "pensión", "hijos", "matrimonio", "separación"},
		"El Derecho Familiar trata sobre divorcios, custodias, pensiones alimenticias y otros asuntos familiares."},
	{model.AreaMercantil, []string{"mercantil", "empresa", "comercial", "sociedad", "negocio", "compañía"},
		"El Derecho Mercantil regula la actividad de empresas, sociedades y contratos comerciales."},
	{model.AreaPenal, []string{"penal", "delito", "acusación", "defensa", "crimen", "juicio penal"},
		"El Derecho Penal se ocupa de delitos, acusaciones y defensa penal."},
	{model.AreaAdministrativo, []string{"administrativo", "multa", "sanción", "administración", "gobierno"},
		"El Derecho Administrativo abarca sanciones, multas y relaciones con la administración pública."},
}

// DetectArea names a practice area mentioned in free text. Returns the
// area, its explanatory blurb and whether anything matched.
func DetectArea(text string) (model.PracticeArea, string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range detectionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.area, rule.explanation, true
			}
		}
	}
	return "", "", false
}
