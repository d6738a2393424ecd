package pacs

import "time"

// Roles known to the backend.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
)

// User is a backend user record.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Active         bool   `json:"activo"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// NewUser is the payload for creating a user.
type NewUser struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Active         bool   `json:"activo"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// Organization is a tenant.
type Organization struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Logo         string `json:"logo,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Address      string `json:"address,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Study is a DICOM study as indexed by the backend.
type Study struct {
	ID                 string `json:"id"`
	StudyInstanceUID   string `json:"studyInstanceUID"`
	PatientID          string `json:"patientId"`
	PatientName        string `json:"patientName"`
	PatientBirthDate   string `json:"patientBirthDate,omitempty"`
	PatientSex         string `json:"patientSex,omitempty"`
	StudyDate          string `json:"studyDate,omitempty"`
	StudyTime          string `json:"studyTime,omitempty"`
	StudyDescription   string `json:"studyDescription,omitempty"`
	AccessionNumber    string `json:"accessionNumber,omitempty"`
	ReferringPhysician string `json:"referringPhysician,omitempty"`
	Modality           string `json:"modality,omitempty"`
	InstitutionName    string `json:"institutionName,omitempty"`
	NumberOfSeries     int    `json:"numberOfSeries"`
	NumberOfInstances  int    `json:"numberOfInstances"`
	Status             string `json:"status,omitempty"`
	OrganizationID     string `json:"organizationId,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
}

// StudySearch filters a study search. Zero fields are not sent.
type StudySearch struct {
	PatientID       string
	PatientName     string
	StudyDate       time.Time
	Modality        string
	AccessionNumber string
}

// StudyStats is the study counter of the current tenant.
type StudyStats struct {
	TotalStudies int64 `json:"totalStudies"`
	Timestamp    int64 `json:"timestamp"`
}

// Node types.
const (
	NodeSCU  = "SCU"
	NodeSCP  = "SCP"
	NodeBoth = "BOTH"
)

// DicomNode is a configured DICOM application entity.
type DicomNode struct {
	ID             string `json:"id"`
	AETitle        string `json:"aeTitle"`
	Hostname       string `json:"hostname"`
	Port           int    `json:"port"`
	Description    string `json:"description,omitempty"`
	NodeType       string `json:"nodeType"`
	OrganizationID string `json:"organizationId,omitempty"`
	QueryRetrieve  bool   `json:"queryRetrieve"`
	Store          bool   `json:"store"`
	Echo           bool   `json:"echo"`
	Find           bool   `json:"find"`
	Move           bool   `json:"move"`
	Get            bool   `json:"get"`
	Active         bool   `json:"active"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// EchoResult is the outcome of a C-ECHO against one node.
type EchoResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// BatchEchoResult maps node identifiers to their echo result.
type BatchEchoResult struct {
	Results      map[string]bool `json:"results"`
	TotalTested  int             `json:"totalTested"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Timestamp    int64           `json:"timestamp"`
}

// NodeStats counts nodes by state and type.
type NodeStats struct {
	TotalNodes    int   `json:"totalNodes"`
	ActiveNodes   int   `json:"activeNodes"`
	InactiveNodes int   `json:"inactiveNodes"`
	SCUNodes      int   `json:"scuNodes"`
	SCPNodes      int   `json:"scpNodes"`
	BothNodes     int   `json:"bothNodes"`
	Timestamp     int64 `json:"timestamp"`
}

// EngineStatus is the PACS engine status document. Its shape depends on the
// engine build, so it is kept as a generic map.
type EngineStatus map[string]any

// Online reports the engine's own "online" flag, if present.
func (s EngineStatus) Online() bool {
	v, _ := s["online"].(bool)
	return v
}
