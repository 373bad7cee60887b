// Copyright 2026 NetApp, Inc. All Rights Reserved.

// Package fakexms is an in-memory XtremIO Management Server for tests. It serves both the v1
// (/api/json/types) and v2 (/api/json/v2/types) REST surfaces from the same state.
package fakexms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brunoga/deep"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	. "github.com/netapp/xtremio-driver/logging"
)

const (
	DefaultClusterName = "brick1"
	DefaultVersion     = "4.0.0-devel_ba23ee5381eeab73"
	DefaultTargetGroup = "Default"

	PortalIQN     = "iqn.2008-05.com.xtremio:001e67939c34"
	PortalAddress = "10.205.68.5/16"
	PortalPort    = 3260

	TargetWWN1 = "21:00:00:24:ff:57:b2:36"
	TargetWWN2 = "21:00:00:24:ff:57:b2:55"
)

const (
	v1Prefix = "/api/json/types"
	v2Prefix = "/api/json/v2/types"
)

// Failure makes matching requests fail. Times is the number of requests to fail; zero fails all of them.
type Failure struct {
	Method     string
	Collection string
	Status     int
	Message    string
	Times      int
}

// Request is a request the server has received.
type Request struct {
	Method     string
	Path       string
	Collection string
	Query      url.Values
	Body       map[string]any
}

type table struct {
	next    int
	records map[int]map[string]any
}

// Server is a fake XMS. All state lives behind one lock.
type Server struct {
	*httptest.Server

	m sync.Mutex

	useTLS        bool
	username      string
	password      string
	version       string
	clusterName   string
	noClusters    bool
	noPortals     bool
	chapAuthMode  string
	chapDiscMode  string
	snapshotLimit int

	tables         map[string]*table
	failures       []*Failure
	phantomLunMaps []int
	requests       []Request
}

type Option func(*Server)

// WithVersion sets the software version reported by the cluster.
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

func WithClusterName(name string) Option {
	return func(s *Server) { s.clusterName = name }
}

// WithoutClusters starts an array that reports no clusters.
func WithoutClusters() Option {
	return func(s *Server) { s.noClusters = true }
}

// WithoutISCSIPortals starts an array with no iSCSI portals.
func WithoutISCSIPortals() Option {
	return func(s *Server) { s.noPortals = true }
}

// WithCHAP sets the cluster's login and discovery CHAP modes.
func WithCHAP(authenticationMode, discoveryMode string) Option {
	return func(s *Server) {
		s.chapAuthMode = authenticationMode
		s.chapDiscMode = discoveryMode
	}
}

// WithCredentials makes the server require basic authentication.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// WithSnapshotLimit caps the number of snapshots taken of any one volume.
func WithSnapshotLimit(limit int) Option {
	return func(s *Server) { s.snapshotLimit = limit }
}

// WithTLS serves HTTPS with a self-signed certificate.
func WithTLS() Option {
	return func(s *Server) { s.useTLS = true }
}

// New starts a fake XMS seeded with one cluster, the default target group, an iSCSI portal and
// two Fibre Channel targets.
func New(options ...Option) *Server {
	s := &Server{
		version:      DefaultVersion,
		clusterName:  DefaultClusterName,
		chapAuthMode: "disabled",
		chapDiscMode: "disabled",
		tables:       make(map[string]*table),
	}
	for _, option := range options {
		option(s)
	}
	s.seed()

	router := mux.NewRouter()
	for _, prefix := range []string{v1Prefix, v2Prefix} {
		sub := router.PathPrefix(prefix).Subrouter()
		sub.HandleFunc("/{collection}", s.serve)
		sub.HandleFunc("/{collection}/{index:[0-9]+}", s.serve)
	}
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	if s.useTLS {
		s.Server = httptest.NewTLSServer(router)
	} else {
		s.Server = httptest.NewServer(router)
	}
	return s
}

func (s *Server) seed() {
	if !s.noClusters {
		s.insert("clusters", map[string]any{
			"name":                     s.clusterName,
			"sys-sw-version":           s.version,
			"chap-authentication-mode": s.chapAuthMode,
			"chap-discovery-mode":      s.chapDiscMode,
			"ud-ssd-space":             "8146708710",
			"ud-ssd-space-in-use":      "708710",
			"vol-size":                 "0",
		})
	}
	s.insert("target-groups", map[string]any{"name": DefaultTargetGroup})
	if !s.noPortals {
		s.insert("iscsi-portals", map[string]any{
			"name":         PortalAddress,
			"ip-addr":      PortalAddress,
			"ip-port":      PortalPort,
			"port-address": PortalIQN,
		})
	}
	s.insert("targets", map[string]any{
		"name": "X1-SC2-target1", "port-address": PortalIQN, "port-type": "iscsi", "port-state": "up",
	})
	s.insert("targets", map[string]any{
		"name": "X1-SC2-fc1", "port-address": TargetWWN1, "port-type": "fc", "port-state": "up",
	})
	s.insert("targets", map[string]any{
		"name": "X1-SC2-fc2", "port-address": TargetWWN2, "port-type": "fc", "port-state": "up",
	})
}

// ///////////////////////////////////////////////////////////////////////////
// Test controls
// ///////////////////////////////////////////////////////////////////////////

// Fail queues a failure.
func (s *Server) Fail(failure Failure) {
	s.m.Lock()
	defer s.m.Unlock()
	f := failure
	if f.Status == 0 {
		f.Status = http.StatusBadRequest
	}
	s.failures = append(s.failures, &f)
}

// FailBusy makes the next n requests on the collection report that the system is busy.
func (s *Server) FailBusy(method, collection string, n int) {
	s.Fail(Failure{Method: method, Collection: collection, Message: "system_is_busy", Times: n})
}

// ClearFailures drops every queued failure.
func (s *Server) ClearFailures() {
	s.m.Lock()
	defer s.m.Unlock()
	s.failures = nil
}

// AddPhantomLunMaps lists n lun maps that no longer exist by the time they are fetched.
func (s *Server) AddPhantomLunMaps(n int) {
	s.m.Lock()
	defer s.m.Unlock()
	t := s.table("lun-maps")
	for i := 0; i < n; i++ {
		t.next++
		s.phantomLunMaps = append(s.phantomLunMaps, t.next)
	}
}

// Count returns the number of records in a collection.
func (s *Server) Count(collection string) int {
	s.m.Lock()
	defer s.m.Unlock()
	return len(s.list(collection))
}

// Names returns the sorted names of the records in a collection.
func (s *Server) Names(collection string) []string {
	s.m.Lock()
	defer s.m.Unlock()
	names := make([]string, 0)
	for _, rec := range s.list(collection) {
		names = append(names, str(rec["name"]))
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of a record.
func (s *Server) Get(collection, name string) (map[string]any, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	rec := s.byName(collection, name)
	if rec == nil {
		return nil, false
	}
	return deep.MustCopy(rec), true
}

// Seed inserts a record as is and returns its index.
func (s *Server) Seed(collection string, fields map[string]any) int {
	s.m.Lock()
	defer s.m.Unlock()
	return s.insert(storageFor(collection), deep.MustCopy(fields))
}

// Set overwrites fields of an existing record.
func (s *Server) Set(collection, name string, fields map[string]any) bool {
	s.m.Lock()
	defer s.m.Unlock()
	rec := s.byName(collection, name)
	if rec == nil {
		return false
	}
	for key, value := range fields {
		rec[key] = value
	}
	return true
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.m.Lock()
	defer s.m.Unlock()
	return deep.MustCopy(s.requests)
}

func (s *Server) ResetRequests() {
	s.m.Lock()
	defer s.m.Unlock()
	s.requests = nil
}

// ///////////////////////////////////////////////////////////////////////////
// Request handling
// ///////////////////////////////////////////////////////////////////////////

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]
	query := r.URL.Query()

	var body map[string]any
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
	}

	s.m.Lock()
	defer s.m.Unlock()

	s.requests = append(s.requests, Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Collection: collection,
		Query:      query,
		Body:       body,
	})

	Logc(r.Context()).WithFields(LogFields{
		"method":     r.Method,
		"collection": collection,
		"query":      r.URL.RawQuery,
	}).Trace("Fake XMS request.")

	if s.username != "" {
		if user, pass, ok := r.BasicAuth(); !ok || user != s.username || pass != s.password {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
	}
	if !knownCollections[collection] {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if f := s.takeFailure(r.Method, collection); f != nil {
		writeError(w, f.Status, f.Message)
		return
	}

	prefix := v1Prefix
	if strings.HasPrefix(r.URL.Path, v2Prefix) {
		prefix = v2Prefix
		cluster := query.Get("cluster-name")
		if body != nil {
			if id, ok := body["cluster-id"]; ok {
				cluster = str(id)
				delete(body, "cluster-id")
			}
		}
		if cluster != "" && s.byName("clusters", cluster) == nil {
			writeError(w, http.StatusBadRequest, "cluster_obj_not_found")
			return
		}
	}

	index, _ := strconv.Atoi(vars["index"])
	name := query.Get("name")

	switch r.Method {
	case http.MethodGet:
		if index > 0 || name != "" {
			s.getRecord(w, collection, name, index)
			return
		}
		s.getListing(w, prefix, collection, query)
	case http.MethodPost:
		s.create(w, prefix, collection, body)
	case http.MethodPut:
		s.update(w, collection, name, index, body)
	case http.MethodDelete:
		if index > 0 || name != "" {
			s.deleteRecord(w, collection, name, index)
			return
		}
		s.deleteWhere(w, collection, query)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	}
}

func (s *Server) takeFailure(method, collection string) *Failure {
	for i, f := range s.failures {
		if f.Method != "" && f.Method != method {
			continue
		}
		if f.Collection != "" && f.Collection != collection {
			continue
		}
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
			}
		}
		return f
	}
	return nil
}

func (s *Server) getRecord(w http.ResponseWriter, collection, name string, index int) {
	var rec map[string]any
	if index > 0 {
		rec = s.byIndex(collection, index)
	} else {
		rec = s.byName(collection, name)
	}
	if rec == nil {
		writeError(w, http.StatusBadRequest, notFoundMessage(collection))
		return
	}
	if collection == "clusters" {
		rec["vol-size"] = strconv.FormatInt(s.provisionedKiB(), 10)
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": rec})
}

func (s *Server) getListing(w http.ResponseWriter, prefix, collection string, query url.Values) {
	records := s.list(collection)

	if query.Get("full") != "1" {
		refs := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			refs = append(refs, map[string]any{
				"href": s.href(prefix, collection, rec["index"].(int)),
				"name": rec["name"],
			})
		}
		if collection == "lun-maps" {
			for _, idx := range s.phantomLunMaps {
				refs = append(refs, map[string]any{"href": s.href(prefix, collection, idx), "name": ""})
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{collection: refs})
		return
	}

	full := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if !matchesFilters(rec, query["filter"]) {
			continue
		}
		if props := query["prop"]; len(props) > 0 {
			selected := map[string]any{"index": rec["index"], "name": rec["name"]}
			for _, prop := range props {
				selected[prop] = rec[prop]
			}
			rec = selected
		}
		full = append(full, rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{collection: full})
}

func matchesFilters(rec map[string]any, filters []string) bool {
	for _, filter := range filters {
		parts := strings.SplitN(filter, ":", 3)
		if len(parts) != 3 || parts[1] != "eq" {
			continue
		}
		value := rec[parts[0]]
		if tuple, ok := value.([]any); ok && len(tuple) > 1 {
			value = tuple[1]
		}
		if str(value) != parts[2] {
			return false
		}
	}
	return true
}

// ///////////////////////////////////////////////////////////////////////////
// Create
// ///////////////////////////////////////////////////////////////////////////

func (s *Server) create(w http.ResponseWriter, prefix, collection string, body map[string]any) {
	var (
		indexes []int
		status  int
		message string
	)

	switch collection {
	case "volumes":
		indexes, status, message = s.createVolume(body)
	case "snapshots":
		indexes, status, message = s.createSnapshots(body)
	case "initiator-groups":
		indexes, status, message = s.createNamed(collection, str(body["ig-name"]), map[string]any{"num-of-vols": 0})
	case "initiators":
		indexes, status, message = s.createInitiator(body)
	case "lun-maps":
		indexes, status, message = s.createLunMap(body)
	case "consistency-groups":
		indexes, status, message = s.createConsistencyGroup(body)
	case "consistency-group-volumes":
		indexes, status, message = s.addToConsistencyGroup(body)
	default:
		status, message = http.StatusBadRequest, "operation_not_supported"
	}
	if message != "" {
		writeError(w, status, message)
		return
	}

	links := make([]map[string]any, 0, len(indexes))
	for _, idx := range indexes {
		links = append(links, map[string]any{"href": s.href(prefix, collection, idx), "rel": "self"})
	}
	writeJSON(w, http.StatusCreated, map[string]any{"links": links})
}

func (s *Server) createNamed(collection, name string, fields map[string]any) ([]int, int, string) {
	if name == "" {
		return nil, http.StatusBadRequest, "invalid_name"
	}
	if s.byName(collection, name) != nil {
		return nil, http.StatusBadRequest, nameNotUniqueMessage(collection)
	}
	fields["name"] = name
	return []int{s.insert(storageFor(collection), fields)}, 0, ""
}

func (s *Server) createVolume(body map[string]any) ([]int, int, string) {
	sizeKiB, err := parseSize(str(body["vol-size"]))
	if err != nil {
		return nil, http.StatusBadRequest, "invalid_vol_size"
	}
	return s.createNamed("volumes", str(body["vol-name"]), map[string]any{
		"vol-size":          strconv.FormatInt(sizeKiB, 10),
		"num-of-dest-snaps": 0,
		"creation-time":     time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
}

func (s *Server) snapshotOf(source map[string]any, name, snapshotType string) (int, int, string) {
	if s.byName("volumes", name) != nil {
		return 0, http.StatusBadRequest, nameNotUniqueMessage("volumes")
	}
	taken := toInt(source["num-of-dest-snaps"])
	if s.snapshotLimit > 0 && taken >= s.snapshotLimit {
		return 0, http.StatusBadRequest, "too_many_snapshots_per_vol"
	}
	source["num-of-dest-snaps"] = taken + 1
	if snapshotType == "" {
		snapshotType = "regular"
	}
	idx := s.insert("volumes", map[string]any{
		"name":              name,
		"vol-size":          source["vol-size"],
		"ancestor-vol-id":   cloneID(source["vol-id"]),
		"num-of-dest-snaps": 0,
		"snapshot-type":     snapshotType,
		"creation-time":     time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
	return idx, 0, ""
}

// createSnapshots handles both the v1 single snapshot and the v2 snapshot set forms.
func (s *Server) createSnapshots(body map[string]any) ([]int, int, string) {
	if destination, ok := body["snap-vol-name"]; ok {
		source := s.lookup("volumes", body["ancestor-vol-id"])
		if source == nil {
			return nil, http.StatusBadRequest, "vol_obj_not_found"
		}
		idx, status, message := s.snapshotOf(source, str(destination), "")
		if message != "" {
			return nil, status, message
		}
		return []int{idx}, 0, ""
	}

	var sources []map[string]any
	var group map[string]any
	if groupRef, ok := body["consistency-group-id"]; ok {
		if group = s.lookup("consistency-groups", groupRef); group == nil {
			return nil, http.StatusBadRequest, "cg_obj_not_found"
		}
		for _, id := range asList(group["vol-list"]) {
			if source := s.lookup("volumes", id); source != nil {
				sources = append(sources, source)
			}
		}
	} else {
		for _, ref := range asList(body["volume-list"]) {
			source := s.lookup("volumes", ref)
			if source == nil {
				return nil, http.StatusBadRequest, "vol_obj_not_found"
			}
			sources = append(sources, source)
		}
	}
	if len(sources) == 0 {
		return nil, http.StatusBadRequest, "no_volumes_to_snapshot"
	}

	setName := str(body["snapshot-set-name"])
	if setName == "" {
		setName = "SnapshotSet." + uuid.NewString()
	}
	if s.byName("snapshot-sets", setName) != nil {
		return nil, http.StatusBadRequest, nameNotUniqueMessage("snapshot-sets")
	}
	suffix := str(body["snap-suffix"])
	if suffix == "" {
		suffix = strconv.FormatInt(time.Now().Unix(), 10)
	}

	indexes := make([]int, 0, len(sources))
	members := make([]any, 0, len(sources))
	for _, source := range sources {
		name := str(source["name"]) + "." + suffix
		for i := 1; s.byName("volumes", name) != nil; i++ {
			name = fmt.Sprintf("%s.%s.%d", source["name"], suffix, i)
		}
		idx, status, message := s.snapshotOf(source, name, str(body["snapshot-type"]))
		if message != "" {
			return nil, status, message
		}
		indexes = append(indexes, idx)
		members = append(members, cloneID(s.byIndex("volumes", idx)["vol-id"]))
	}

	set := map[string]any{"name": setName, "vol-list": members, "num-of-vols": len(members)}
	if group != nil {
		set["cg-id"] = cloneID(group["cg-id"])
	}
	s.insert("snapshot-sets", set)
	return indexes, 0, ""
}

func (s *Server) createInitiator(body map[string]any) ([]int, int, string) {
	group := s.lookup("initiator-groups", body["ig-id"])
	if group == nil {
		return nil, http.StatusBadRequest, "ig_obj_not_found"
	}
	portAddress := str(body["port-address"])
	for _, rec := range s.list("initiators") {
		if str(rec["port-address"]) == portAddress {
			return nil, http.StatusBadRequest, "port_address_not_unique"
		}
	}
	fields := map[string]any{
		"port-address":                           portAddress,
		"ig-id":                                  cloneID(group["ig-id"]),
		"chap-authentication-initiator-password": nil,
		"chap-discovery-initiator-password":      nil,
	}
	applyCHAP(fields, body)
	return s.createNamed("initiators", str(body["initiator-name"]), fields)
}

func applyCHAP(rec, body map[string]any) {
	if v, ok := body["initiator-authentication-password"]; ok {
		rec["chap-authentication-initiator-password"] = v
		rec["chap-authentication-initiator-user-name"] = body["initiator-authentication-user-name"]
	}
	if v, ok := body["initiator-discovery-password"]; ok {
		rec["chap-discovery-initiator-password"] = v
		rec["chap-discovery-initiator-user-name"] = body["initiator-discovery-user-name"]
	}
}

func (s *Server) createLunMap(body map[string]any) ([]int, int, string) {
	volume := s.lookup("volumes", body["vol-id"])
	if volume == nil {
		return nil, http.StatusBadRequest, "vol_obj_not_found"
	}
	group := s.lookup("initiator-groups", body["ig-id"])
	if group == nil {
		return nil, http.StatusBadRequest, "ig_obj_not_found"
	}
	tgRef, ok := body["tg-id"]
	if !ok {
		tgRef = DefaultTargetGroup
	}
	targetGroup := s.lookup("target-groups", tgRef)
	if targetGroup == nil {
		return nil, http.StatusBadRequest, "tg_obj_not_found"
	}

	used := make(map[int]bool)
	for _, lm := range s.list("lun-maps") {
		if lm["ig-name"] != group["name"] || lm["tg-name"] != targetGroup["name"] {
			continue
		}
		if lm["vol-name"] == volume["name"] {
			return nil, http.StatusBadRequest, "already_mapped"
		}
		used[toInt(lm["lun"])] = true
	}

	lun := toInt(body["lun"])
	if lun > 0 && used[lun] {
		return nil, http.StatusBadRequest, "lun_already_in_use"
	}
	for lun <= 0 || used[lun] {
		lun++
	}

	name := fmt.Sprintf("%d_%d_%d", volume["index"], group["index"], targetGroup["index"])
	idx := s.insert("lun-maps", map[string]any{
		"name":     name,
		"vol-id":   cloneID(volume["vol-id"]),
		"vol-name": volume["name"],
		"ig-id":    cloneID(group["ig-id"]),
		"ig-name":  group["name"],
		"tg-id":    cloneID(targetGroup["tg-id"]),
		"tg-name":  targetGroup["name"],
		"lun":      lun,
	})
	group["num-of-vols"] = toInt(group["num-of-vols"]) + 1
	return []int{idx}, 0, ""
}

func (s *Server) createConsistencyGroup(body map[string]any) ([]int, int, string) {
	var volumes []map[string]any
	for _, ref := range asList(body["vol-list"]) {
		volume := s.lookup("volumes", ref)
		if volume == nil {
			return nil, http.StatusBadRequest, "vol_obj_not_found"
		}
		volumes = append(volumes, volume)
	}

	indexes, status, message := s.createNamed("consistency-groups", str(body["consistency-group-name"]),
		map[string]any{"vol-list": []any{}})
	if message != "" {
		return nil, status, message
	}
	group := s.byIndex("consistency-groups", indexes[0])
	for _, volume := range volumes {
		s.join(group, volume)
	}
	return indexes, 0, ""
}

func (s *Server) addToConsistencyGroup(body map[string]any) ([]int, int, string) {
	volume := s.lookup("volumes", body["vol-id"])
	if volume == nil {
		return nil, http.StatusBadRequest, "vol_obj_not_found"
	}
	group := s.lookup("consistency-groups", body["cg-id"])
	if group == nil {
		return nil, http.StatusBadRequest, "cg_obj_not_found"
	}
	if s.findJoin(group, volume) != nil {
		return nil, http.StatusBadRequest, "cg_vol_not_unique"
	}
	return []int{s.join(group, volume)}, 0, ""
}

func (s *Server) join(group, volume map[string]any) int {
	group["vol-list"] = append(asList(group["vol-list"]), cloneID(volume["vol-id"]))
	return s.insert("consistency-group-volumes", map[string]any{
		"name":   fmt.Sprintf("%s_%s", group["name"], volume["name"]),
		"cg-id":  cloneID(group["cg-id"]),
		"vol-id": cloneID(volume["vol-id"]),
	})
}

func (s *Server) findJoin(group, volume map[string]any) map[string]any {
	for _, rec := range s.list("consistency-group-volumes") {
		if tupleName(rec["cg-id"]) == group["name"] && tupleName(rec["vol-id"]) == volume["name"] {
			return rec
		}
	}
	return nil
}

// ///////////////////////////////////////////////////////////////////////////
// Update
// ///////////////////////////////////////////////////////////////////////////

func (s *Server) update(w http.ResponseWriter, collection, name string, index int, body map[string]any) {
	var rec map[string]any
	if index > 0 {
		rec = s.byIndex(collection, index)
	} else if name != "" {
		rec = s.byName(collection, name)
	}
	if rec == nil {
		writeError(w, http.StatusBadRequest, notFoundMessage(collection))
		return
	}

	switch storageFor(collection) {
	case "volumes":
		if size, ok := body["vol-size"]; ok {
			sizeKiB, err := parseSize(str(size))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_vol_size")
				return
			}
			rec["vol-size"] = strconv.FormatInt(sizeKiB, 10)
		}
		newName, ok := body["vol-name"]
		if !ok {
			newName, ok = body["name"]
		}
		if ok {
			if message := s.rename(collection, rec, str(newName)); message != "" {
				writeError(w, http.StatusBadRequest, message)
				return
			}
		}
	case "initiators":
		applyCHAP(rec, body)
	default:
		if newName, ok := body["name"]; ok {
			if message := s.rename(collection, rec, str(newName)); message != "" {
				writeError(w, http.StatusBadRequest, message)
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) rename(collection string, rec map[string]any, newName string) string {
	if newName == "" {
		return "invalid_name"
	}
	if newName == rec["name"] {
		return ""
	}
	if s.byName(collection, newName) != nil {
		return nameNotUniqueMessage(collection)
	}
	oldName := rec["name"]
	rec["name"] = newName

	guid := ""
	if tuple, ok := rec[idKeys[storageFor(collection)]].([]any); ok && len(tuple) > 0 {
		guid = str(tuple[0])
	}
	// Every copy of the renamed record's id tuple follows the new name.
	for _, t := range s.tables {
		for _, other := range t.records {
			for key, value := range other {
				tuple, ok := value.([]any)
				if ok && len(tuple) == 3 && str(tuple[0]) == guid && guid != "" {
					tuple[1] = newName
				}
				if list, ok := value.([]any); ok && key == "vol-list" {
					for _, item := range list {
						if member, ok := item.([]any); ok && len(member) == 3 && str(member[0]) == guid {
							member[1] = newName
						}
					}
				}
			}
		}
	}
	if storageFor(collection) == "volumes" {
		for _, lm := range s.list("lun-maps") {
			if lm["vol-name"] == oldName {
				lm["vol-name"] = newName
			}
		}
	}
	return ""
}

// ///////////////////////////////////////////////////////////////////////////
// Delete
// ///////////////////////////////////////////////////////////////////////////

func (s *Server) deleteRecord(w http.ResponseWriter, collection, name string, index int) {
	var rec map[string]any
	if index > 0 {
		rec = s.byIndex(collection, index)
	} else {
		rec = s.byName(collection, name)
	}
	if rec == nil {
		writeError(w, http.StatusBadRequest, notFoundMessage(collection))
		return
	}

	switch storageFor(collection) {
	case "volumes":
		for _, lm := range s.list("lun-maps") {
			if lm["vol-name"] == rec["name"] {
				writeError(w, http.StatusBadRequest, "vol_is_mapped")
				return
			}
		}
		s.forgetVolume(rec)
	case "initiator-groups":
		for _, lm := range s.list("lun-maps") {
			if lm["ig-name"] == rec["name"] {
				writeError(w, http.StatusBadRequest, "ig_has_mappings")
				return
			}
		}
		for _, initiator := range s.list("initiators") {
			if tupleName(initiator["ig-id"]) == rec["name"] {
				s.remove("initiators", initiator)
			}
		}
	case "lun-maps":
		if group := s.byName("initiator-groups", str(rec["ig-name"])); group != nil {
			group["num-of-vols"] = toInt(group["num-of-vols"]) - 1
		}
	case "consistency-groups":
		for _, joinRec := range s.list("consistency-group-volumes") {
			if tupleName(joinRec["cg-id"]) == rec["name"] {
				s.remove("consistency-group-volumes", joinRec)
			}
		}
	case "snapshot-sets":
		for _, id := range asList(rec["vol-list"]) {
			if member := s.lookup("volumes", id); member != nil {
				s.forgetVolume(member)
				s.remove("volumes", member)
			}
		}
	}
	s.remove(storageFor(collection), rec)
	writeJSON(w, http.StatusOK, map[string]any{})
}

// forgetVolume drops a volume from the groups and snapshot sets that reference it.
func (s *Server) forgetVolume(volume map[string]any) {
	name := volume["name"]
	if ancestor := s.lookup("volumes", volume["ancestor-vol-id"]); ancestor != nil {
		ancestor["num-of-dest-snaps"] = toInt(ancestor["num-of-dest-snaps"]) - 1
	}
	for _, joinRec := range s.list("consistency-group-volumes") {
		if tupleName(joinRec["vol-id"]) == name {
			s.remove("consistency-group-volumes", joinRec)
		}
	}
	for _, collection := range []string{"consistency-groups", "snapshot-sets"} {
		for _, rec := range s.list(collection) {
			rec["vol-list"] = withoutName(asList(rec["vol-list"]), name)
			if collection == "snapshot-sets" {
				rec["num-of-vols"] = len(asList(rec["vol-list"]))
			}
		}
	}
}

// deleteWhere deletes a group membership, the only record addressed by its fields.
func (s *Server) deleteWhere(w http.ResponseWriter, collection string, query url.Values) {
	if collection != "consistency-group-volumes" {
		writeError(w, http.StatusBadRequest, "name_or_index_required")
		return
	}
	group := s.lookup("consistency-groups", query.Get("cg-id"))
	volume := s.lookup("volumes", query.Get("vol-id"))
	if group == nil || volume == nil {
		writeError(w, http.StatusBadRequest, "obj_not_found")
		return
	}
	joinRec := s.findJoin(group, volume)
	if joinRec == nil {
		writeError(w, http.StatusBadRequest, "obj_not_found")
		return
	}
	group["vol-list"] = withoutName(asList(group["vol-list"]), volume["name"])
	s.remove("consistency-group-volumes", joinRec)
	writeJSON(w, http.StatusOK, map[string]any{})
}

// ///////////////////////////////////////////////////////////////////////////
// Storage
// ///////////////////////////////////////////////////////////////////////////

var knownCollections = map[string]bool{
	"volumes":                   true,
	"snapshots":                 true,
	"initiators":                true,
	"initiator-groups":          true,
	"lun-maps":                  true,
	"consistency-groups":        true,
	"consistency-group-volumes": true,
	"snapshot-sets":             true,
	"clusters":                  true,
	"iscsi-portals":             true,
	"targets":                   true,
	"target-groups":             true,
}

var idKeys = map[string]string{
	"volumes":                   "vol-id",
	"initiators":                "initiator-id",
	"initiator-groups":          "ig-id",
	"lun-maps":                  "mapping-id",
	"consistency-groups":        "cg-id",
	"consistency-group-volumes": "cg-vol-id",
	"snapshot-sets":             "snapset-id",
	"clusters":                  "sys-id",
	"iscsi-portals":             "portal-id",
	"targets":                   "tar-id",
	"target-groups":             "tg-id",
}

// storageFor maps the snapshot alias onto the volumes it is stored with.
func storageFor(collection string) string {
	if collection == "snapshots" {
		return "volumes"
	}
	return collection
}

func (s *Server) table(collection string) *table {
	t, ok := s.tables[collection]
	if !ok {
		t = &table{records: make(map[int]map[string]any)}
		s.tables[collection] = t
	}
	return t
}

func (s *Server) insert(collection string, rec map[string]any) int {
	t := s.table(collection)
	t.next++
	idx := t.next
	rec["index"] = idx
	if key := idKeys[collection]; key != "" {
		if _, ok := rec[key]; !ok {
			rec[key] = []any{strings.ReplaceAll(uuid.NewString(), "-", ""), rec["name"], idx}
		}
	}
	t.records[idx] = rec
	return idx
}

func (s *Server) remove(collection string, rec map[string]any) {
	delete(s.table(collection).records, rec["index"].(int))
}

// list returns the live records of a collection in index order. The snapshot alias lists only snapshots.
func (s *Server) list(collection string) []map[string]any {
	t := s.table(storageFor(collection))
	indexes := make([]int, 0, len(t.records))
	for idx := range t.records {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	records := make([]map[string]any, 0, len(indexes))
	for _, idx := range indexes {
		rec := t.records[idx]
		if collection == "snapshots" && rec["ancestor-vol-id"] == nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (s *Server) byName(collection, name string) map[string]any {
	for _, rec := range s.list(collection) {
		if rec["name"] == name {
			return rec
		}
	}
	return nil
}

func (s *Server) byIndex(collection string, index int) map[string]any {
	rec := s.table(storageFor(collection)).records[index]
	if rec != nil && collection == "snapshots" && rec["ancestor-vol-id"] == nil {
		return nil
	}
	return rec
}

// lookup resolves a reference given as a name, an index or an id tuple.
func (s *Server) lookup(collection string, ref any) map[string]any {
	switch v := ref.(type) {
	case nil:
		return nil
	case []any:
		if len(v) > 1 {
			return s.byName(collection, str(v[1]))
		}
		return nil
	case float64:
		return s.byIndex(collection, int(v))
	case int:
		return s.byIndex(collection, v)
	}
	name := str(ref)
	if rec := s.byName(collection, name); rec != nil {
		return rec
	}
	if idx, err := strconv.Atoi(name); err == nil {
		return s.byIndex(collection, idx)
	}
	return nil
}

func (s *Server) provisionedKiB() int64 {
	var total int64
	for _, rec := range s.list("volumes") {
		size, _ := strconv.ParseInt(str(rec["vol-size"]), 10, 64)
		total += size
	}
	return total
}

func (s *Server) href(prefix, collection string, index int) string {
	return fmt.Sprintf("%s%s/%s/%d", s.URL, prefix, collection, index)
}

func notFoundMessage(collection string) string {
	switch storageFor(collection) {
	case "volumes":
		return "vol_obj_not_found"
	case "initiator-groups":
		return "ig_obj_not_found"
	}
	return "obj_not_found"
}

func nameNotUniqueMessage(collection string) string {
	if storageFor(collection) == "volumes" {
		return "vol_obj_name_not_unique"
	}
	return "obj_name_not_unique"
}

// parseSize converts sizes like "10g" or "512m" to KiB.
func parseSize(size string) (int64, error) {
	size = strings.ToLower(strings.TrimSpace(size))
	if size == "" {
		return 0, fmt.Errorf("empty size")
	}
	multiplier := int64(1)
	switch size[len(size)-1] {
	case 'k':
		size = size[:len(size)-1]
	case 'm':
		multiplier, size = 1<<10, size[:len(size)-1]
	case 'g':
		multiplier, size = 1<<20, size[:len(size)-1]
	case 't':
		multiplier, size = 1<<30, size[:len(size)-1]
	}
	n, err := strconv.ParseInt(size, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", size)
	}
	return n * multiplier, nil
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	}
	return 0
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		list := make([]any, 0, len(t))
		for _, item := range t {
			list = append(list, item)
		}
		return list
	case nil:
		return nil
	}
	return []any{v}
}

func tupleName(v any) any {
	if tuple, ok := v.([]any); ok && len(tuple) > 1 {
		return tuple[1]
	}
	return v
}

func withoutName(list []any, name any) []any {
	kept := make([]any, 0, len(list))
	for _, item := range list {
		if tupleName(item) != name {
			kept = append(kept, item)
		}
	}
	return kept
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message, "error_code": status})
}

func cloneID(v any) any {
	if tuple, ok := v.([]any); ok {
		return append([]any(nil), tuple...)
	}
	return v
}
