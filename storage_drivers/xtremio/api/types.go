// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Collections exposed by the XMS REST API
const (
	CollectionVolumes                 = "volumes"
	CollectionSnapshots               = "snapshots"
	CollectionInitiators              = "initiators"
	CollectionInitiatorGroups         = "initiator-groups"
	CollectionLunMaps                 = "lun-maps"
	CollectionConsistencyGroups       = "consistency-groups"
	CollectionConsistencyGroupVolumes = "consistency-group-volumes"
	CollectionSnapshotSets            = "snapshot-sets"
	CollectionClusters                = "clusters"
	CollectionISCSIPortals            = "iscsi-portals"
	CollectionTargets                 = "targets"
	CollectionTargetGroups            = "target-groups"
)

var knownCollections = map[string]bool{
	CollectionVolumes:                 true,
	CollectionSnapshots:               true,
	CollectionInitiators:              true,
	CollectionInitiatorGroups:         true,
	CollectionLunMaps:                 true,
	CollectionConsistencyGroups:       true,
	CollectionConsistencyGroupVolumes: true,
	CollectionSnapshotSets:            true,
	CollectionClusters:                true,
	CollectionISCSIPortals:            true,
	CollectionTargets:                 true,
	CollectionTargetGroups:            true,
}

// IsKnownCollection reports whether the collection is one the client may address.
func IsKnownCollection(collection string) bool {
	return knownCollections[collection]
}

// Array messages with special meaning
const (
	MessageSystemIsBusy           = "system_is_busy"
	MessageObjectNotFound         = "obj_not_found"
	MessageVolumeNotFound         = "vol_obj_not_found"
	MessageVolumeNameNotUnique    = "vol_obj_name_not_unique"
	MessageAlreadyMapped          = "already_mapped"
	MessageTooManyObjects         = "too_many_objs"
	MessageTooManySnapshotsPerVol = "too_many_snapshots_per_vol"
)

const (
	DefaultTargetGroup = "Default"

	CHAPModeDisabled = "disabled"

	SnapshotTypeReadOnly = "readonly"
	SnapshotTypeRegular  = "regular"

	PortStateUp = "up"
)

// Number decodes the array's numeric fields, which arrive as JSON numbers, decimal strings or null.
type Number int64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*n = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = Number(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cannot decode %s as a number", string(b))
	}
	*n = Number(f)
	return nil
}

func (n Number) Int() int { return int(n) }

func (n Number) Uint64() uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// ObjectID is the array's [guid, name, index] identifier tuple.
type ObjectID struct {
	GUID  string
	Name  string
	Index int
}

func (o *ObjectID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*o = ObjectID{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	switch b[0] {
	case '[':
		var parts []json.RawMessage
		if err := json.Unmarshal(b, &parts); err != nil {
			return err
		}
		if len(parts) > 0 {
			_ = json.Unmarshal(parts[0], &o.GUID)
		}
		if len(parts) > 1 {
			_ = json.Unmarshal(parts[1], &o.Name)
		}
		if len(parts) > 2 {
			var idx Number
			if err := idx.UnmarshalJSON(parts[2]); err != nil {
				return err
			}
			o.Index = idx.Int()
		}
	case '"':
		return json.Unmarshal(b, &o.Name)
	default:
		var idx Number
		if err := idx.UnmarshalJSON(b); err != nil {
			return err
		}
		o.Index = idx.Int()
	}
	return nil
}

func (o ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{o.GUID, o.Name, o.Index})
}

func (o ObjectID) IsZero() bool {
	return o.GUID == "" && o.Name == "" && o.Index == 0
}

// Reference is a summary entry of a listing, or the link returned by a create.
type Reference struct {
	Href string `json:"href"`
	Name string `json:"name,omitempty"`
	Rel  string `json:"rel,omitempty"`
}

func (r Reference) segments() []string {
	path := r.Href
	if u, err := url.Parse(r.Href); err == nil {
		path = u.Path
	}
	return strings.Split(strings.Trim(path, "/"), "/")
}

// Index parses the trailing index of the reference's href.
func (r Reference) Index() (int, error) {
	segments := r.segments()
	idx, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil || idx <= 0 {
		return 0, fmt.Errorf("reference %q does not end in an index", r.Href)
	}
	return idx, nil
}

// Collection returns the collection segment of the reference's href.
func (r Reference) Collection() string {
	segments := r.segments()
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2]
}

// ErrorResponse is the body of a rejected request.
type ErrorResponse struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"error_code"`
}

type Volume struct {
	Index          int       `json:"index"`
	Name           string    `json:"name"`
	VolSize        Number    `json:"vol-size"` // KiB
	VolID          ObjectID  `json:"vol-id"`
	AncestorVolID  *ObjectID `json:"ancestor-vol-id,omitempty"`
	NumOfDestSnaps Number    `json:"num-of-dest-snaps"`
	CreationTime   string    `json:"creation-time,omitempty"`
	LunMappingList []any     `json:"lun-mapping-list,omitempty"`
}

type Initiator struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	PortAddress string   `json:"port-address"`
	InitiatorID ObjectID `json:"initiator-id"`
	IGID        ObjectID `json:"ig-id"`

	ChapAuthenticationInitiatorPassword *string `json:"chap-authentication-initiator-password"`
	ChapDiscoveryInitiatorPassword      *string `json:"chap-discovery-initiator-password"`
}

type InitiatorGroup struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	IGID      ObjectID `json:"ig-id"`
	NumOfVols Number   `json:"num-of-vols"`
}

type LunMap struct {
	Index     int      `json:"index"`
	Name      string   `json:"name,omitempty"`
	MappingID ObjectID `json:"mapping-id"`
	VolID     ObjectID `json:"vol-id"`
	VolName   string   `json:"vol-name"`
	IGID      ObjectID `json:"ig-id"`
	IGName    string   `json:"ig-name"`
	TGID      ObjectID `json:"tg-id"`
	TGName    string   `json:"tg-name,omitempty"`
	LUN       Number   `json:"lun"`
}

type ConsistencyGroup struct {
	Index   int        `json:"index"`
	Name    string     `json:"name"`
	CGID    ObjectID   `json:"cg-id"`
	VolList []ObjectID `json:"vol-list"`
}

type ConsistencyGroupVolume struct {
	Index int      `json:"index"`
	Name  string   `json:"name,omitempty"`
	CGID  ObjectID `json:"cg-id"`
	VolID ObjectID `json:"vol-id"`
}

type SnapshotSet struct {
	Index   int        `json:"index"`
	Name    string     `json:"name"`
	VolList []ObjectID `json:"vol-list"`
	CGID    *ObjectID  `json:"cg-id,omitempty"`
}

type Cluster struct {
	Index                  int    `json:"index"`
	Name                   string `json:"name"`
	SysSWVersion           string `json:"sys-sw-version"`
	ChapAuthenticationMode string `json:"chap-authentication-mode"`
	ChapDiscoveryMode      string `json:"chap-discovery-mode"`
	UDSSDSpace             Number `json:"ud-ssd-space"`        // KiB
	UDSSDSpaceInUse        Number `json:"ud-ssd-space-in-use"` // KiB
	VolSize                Number `json:"vol-size"`            // KiB
}

// LoginCHAPEnabled reports whether initiators must authenticate on login.
func (c *Cluster) LoginCHAPEnabled() bool {
	return c.ChapAuthenticationMode != "" && c.ChapAuthenticationMode != CHAPModeDisabled
}

// DiscoveryCHAPEnabled reports whether initiators must authenticate on discovery.
func (c *Cluster) DiscoveryCHAPEnabled() bool {
	return c.ChapDiscoveryMode != "" && c.ChapDiscoveryMode != CHAPModeDisabled
}

type ISCSIPortal struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	IPAddr      string `json:"ip-addr"` // a.b.c.d/len
	IPPort      Number `json:"ip-port"`
	PortAddress string `json:"port-address"` // target IQN
}

// Portal returns the portal as ip:port, without the prefix length.
func (p *ISCSIPortal) Portal() string {
	ip := strings.Split(p.IPAddr, "/")[0]
	return fmt.Sprintf("%s:%d", ip, p.IPPort)
}

type Target struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	PortAddress string `json:"port-address"` // WWN
	PortType    string `json:"port-type"`
	PortState   string `json:"port-state"`
}

// IsUsableFC reports whether the target is an FC port that is up.
func (t *Target) IsUsableFC() bool {
	return strings.Contains(t.Name, "-fc") && t.PortState == PortStateUp
}

type TargetGroup struct {
	Index int      `json:"index"`
	Name  string   `json:"name"`
	TGID  ObjectID `json:"tg-id"`
}

// CHAPSecrets are the credentials stored on an initiator.
type CHAPSecrets struct {
	LoginUsername     string
	LoginPassword     string
	DiscoveryUsername string
	DiscoveryPassword string
}

func (s *CHAPSecrets) fields() map[string]any {
	fields := map[string]any{}
	if s == nil {
		return fields
	}
	if s.LoginPassword != "" {
		fields["initiator-authentication-user-name"] = s.LoginUsername
		fields["initiator-authentication-password"] = s.LoginPassword
	}
	if s.DiscoveryPassword != "" {
		fields["initiator-discovery-user-name"] = s.DiscoveryUsername
		fields["initiator-discovery-password"] = s.DiscoveryPassword
	}
	return fields
}

// Query narrows a hydrated listing with server-side filters and property selection.
type Query struct {
	Filters []string
	Props   []string
}

// FilterEq builds an equality filter expression.
func FilterEq(property, value string) string {
	return property + ":eq:" + value
}
