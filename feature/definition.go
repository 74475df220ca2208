package feature

// BTM type discriminators for the Onshape feature schema.
const (
	btDefinitionCall    = "BTFeatureDefinitionCall-1406"
	btFeature           = "BTMFeature-134"
	btSketchFeature     = "BTMSketch-151"
	btParamQueryList    = "BTMParameterQueryList-148"
	btParamQuantity     = "BTMParameterQuantity-147"
	btParamEnum         = "BTMParameterEnum-145"
	btParamBoolean      = "BTMParameterBoolean-144"
	btParamString       = "BTMParameterString-149"
	btQuery             = "BTMIndividualQuery-138"
	btSketchRegionQuery = "BTMIndividualSketchRegionQuery-140"
	btCurve             = "BTMSketchCurve-4"
	btCurveSegment      = "BTMSketchCurveSegment-155"
	btCircleGeometry    = "BTCurveGeometryCircle-115"
	btLineGeometry      = "BTCurveGeometryLine-117"
	btConstraint        = "BTMSketchConstraint-2"

	libraryRelationNone = "NONE"
)

// Definition is one serialized feature, the exact JSON body the Onshape
// feature endpoint accepts. Descriptors produce it via Build; callers treat
// it as opaque.
type Definition struct {
	BTType  string  `json:"btType"`
	Feature message `json:"feature"`
}

// Builder is the common face of the feature descriptors: validate, then
// serialize. Build never mutates the descriptor, so a descriptor can be
// corrected and rebuilt after a validation failure.
type Builder interface {
	Build() (*Definition, error)
}

var (
	_ Builder = (*Sketch)(nil)
	_ Builder = (*Extrude)(nil)
	_ Builder = (*Fillet)(nil)
	_ Builder = (*Thicken)(nil)
	_ Builder = (*Gear)(nil)
)

// FeatureType returns the feature type token ("newSketch", "extrude", ...).
func (d *Definition) FeatureType() string { return d.Feature.FeatureType }

// Name returns the user-visible feature name.
func (d *Definition) Name() string { return d.Feature.Name }

// message is the BTMFeature body inside a definition call.
type message struct {
	BTType        string             `json:"btType"`
	FeatureType   string             `json:"featureType"`
	Name          string             `json:"name"`
	Suppressed    bool               `json:"suppressed"`
	Namespace     string             `json:"namespace"`
	FeatureScript string             `json:"featureScript,omitempty"`
	Parameters    []parameter        `json:"parameters"`
	Entities      []entityRecord     `json:"entities,omitempty"`
	Constraints   []sketchConstraint `json:"constraints,omitempty"`
}

func newDefinition(featureType, name string, params []parameter) *Definition {
	return &Definition{
		BTType: btDefinitionCall,
		Feature: message{
			BTType:      btFeature,
			FeatureType: featureType,
			Name:        name,
			Namespace:   "",
			Parameters:  params,
		},
	}
}

// parameter is one entry of a feature message's parameter list. The
// concrete forms below mirror the BTM parameter messages.
type parameter interface {
	parameter()
}

type quantityParameter struct {
	BTType              string  `json:"btType"`
	IsInteger           bool    `json:"isInteger"`
	Value               float64 `json:"value"`
	Units               string  `json:"units"`
	Expression          string  `json:"expression"`
	ParameterID         string  `json:"parameterId"`
	ParameterName       string  `json:"parameterName"`
	LibraryRelationType string  `json:"libraryRelationType"`
}

// scalarQuantityParameter is the bare quantity form custom feature
// definitions use: the FeatureScript precondition supplies the units, so
// only the raw number travels.
type scalarQuantityParameter struct {
	BTType      string  `json:"btType"`
	IsInteger   bool    `json:"isInteger"`
	Value       float64 `json:"value"`
	ParameterID string  `json:"parameterId"`
}

type enumParameter struct {
	BTType              string `json:"btType"`
	Namespace           string `json:"namespace"`
	EnumName            string `json:"enumName"`
	Value               string `json:"value"`
	ParameterID         string `json:"parameterId"`
	ParameterName       string `json:"parameterName"`
	LibraryRelationType string `json:"libraryRelationType"`
}

type booleanParameter struct {
	BTType              string `json:"btType"`
	Value               bool   `json:"value"`
	ParameterID         string `json:"parameterId"`
	ParameterName       string `json:"parameterName"`
	LibraryRelationType string `json:"libraryRelationType"`
}

type stringParameter struct {
	BTType      string `json:"btType"`
	Value       string `json:"value"`
	ParameterID string `json:"parameterId"`
}

type queryListParameter struct {
	BTType              string  `json:"btType"`
	Queries             []query `json:"queries"`
	ParameterID         string  `json:"parameterId"`
	ParameterName       string  `json:"parameterName"`
	LibraryRelationType string  `json:"libraryRelationType"`
}

func (quantityParameter) parameter()       {}
func (scalarQuantityParameter) parameter() {}
func (enumParameter) parameter()           {}
func (booleanParameter) parameter()        {}
func (stringParameter) parameter()         {}
func (queryListParameter) parameter()      {}

// query is one entry of a query-list parameter.
type query interface {
	query()
}

// deterministicQuery addresses entities by their deterministic IDs.
type deterministicQuery struct {
	BTType           string   `json:"btType"`
	DeterministicIDs []string `json:"deterministicIds"`
}

// sketchRegionQuery addresses the closed regions of a sketch feature. The
// feature ID appears both in the query text and in the featureId field.
type sketchRegionQuery struct {
	BTType           string   `json:"btType"`
	QueryStatement   *string  `json:"queryStatement"`
	FilterInnerLoops bool     `json:"filterInnerLoops"`
	QueryString      string   `json:"queryString"`
	FeatureID        string   `json:"featureId"`
	DeterministicIDs []string `json:"deterministicIds"`
}

func (deterministicQuery) query() {}
func (sketchRegionQuery) query()  {}

func quantityParam(id string, q Quantity) quantityParameter {
	return quantityParameter{
		BTType:              btParamQuantity,
		IsInteger:           q.integer,
		Value:               q.value,
		Units:               "",
		Expression:          q.Expression(),
		ParameterID:         id,
		LibraryRelationType: libraryRelationNone,
	}
}

func scalarParam(id string, q Quantity) scalarQuantityParameter {
	return scalarQuantityParameter{
		BTType:      btParamQuantity,
		IsInteger:   q.integer,
		Value:       q.value,
		ParameterID: id,
	}
}

func enumParam(id, enumName, value string) enumParameter {
	return enumParameter{
		BTType:              btParamEnum,
		EnumName:            enumName,
		Value:               value,
		ParameterID:         id,
		LibraryRelationType: libraryRelationNone,
	}
}

func boolParam(id string, value bool) booleanParameter {
	return booleanParameter{
		BTType:              btParamBoolean,
		Value:               value,
		ParameterID:         id,
		LibraryRelationType: libraryRelationNone,
	}
}

func queryListParam(id string, queries ...query) queryListParameter {
	return queryListParameter{
		BTType:              btParamQueryList,
		Queries:             queries,
		ParameterID:         id,
		LibraryRelationType: libraryRelationNone,
	}
}

func deterministicIDsQuery(ids []string) deterministicQuery {
	return deterministicQuery{
		BTType:           btQuery,
		DeterministicIDs: ids,
	}
}

func regionQuery(featureID string) sketchRegionQuery {
	return sketchRegionQuery{
		BTType:           btSketchRegionQuery,
		FilterInnerLoops: true,
		QueryString:      `query = qSketchRegion(id + "` + featureID + `", true);`,
		FeatureID:        featureID,
		DeterministicIDs: []string{},
	}
}
