package dispatch

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"rlscore/collaborators/buildqueue"
	"rlscore/collaborators/vfs"
	"rlscore/protocol"
)

// Hand-written, mockgen-shaped fakes for the three collaborator
// interfaces. go.uber.org/mock's code generator isn't run as part of this
// build, so these follow its standard generated shape (Controller +
// Recorder pair per mock, EXPECT()) by hand.

// MockHost is a mock of the analysis.Host interface.
type MockHost struct {
	ctrl     *gomock.Controller
	recorder *MockHostMockRecorder
}

type MockHostMockRecorder struct {
	mock *MockHost
}

func NewMockHost(ctrl *gomock.Controller) *MockHost {
	m := &MockHost{ctrl: ctrl}
	m.recorder = &MockHostMockRecorder{m}
	return m
}

func (m *MockHost) EXPECT() *MockHostMockRecorder {
	return m.recorder
}

func (m *MockHost) Reload(projectPath string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reload", projectPath)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockHostMockRecorder) Reload(projectPath interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reload", reflect.TypeOf((*MockHost)(nil).Reload), projectPath)
}

func (m *MockHost) FindAllRefs(span protocol.Span) ([]protocol.Span, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindAllRefs", span)
	ret0, _ := ret[0].([]protocol.Span)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockHostMockRecorder) FindAllRefs(span interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindAllRefs", reflect.TypeOf((*MockHost)(nil).FindAllRefs), span)
}

func (m *MockHost) GotoDef(span protocol.Span) (protocol.Span, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GotoDef", span)
	ret0, _ := ret[0].(protocol.Span)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockHostMockRecorder) GotoDef(span interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GotoDef", reflect.TypeOf((*MockHost)(nil).GotoDef), span)
}

func (m *MockHost) ShowType(span protocol.Span) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ShowType", span)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockHostMockRecorder) ShowType(span interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ShowType", reflect.TypeOf((*MockHost)(nil).ShowType), span)
}

func (m *MockHost) Docs(span protocol.Span) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Docs", span)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockHostMockRecorder) Docs(span interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Docs", reflect.TypeOf((*MockHost)(nil).Docs), span)
}

func (m *MockHost) DocURL(span protocol.Span) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DocURL", span)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockHostMockRecorder) DocURL(span interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DocURL", reflect.TypeOf((*MockHost)(nil).DocURL), span)
}

// MockQueue is a mock of the buildqueue.Queue interface.
type MockQueue struct {
	ctrl     *gomock.Controller
	recorder *MockQueueMockRecorder
}

type MockQueueMockRecorder struct {
	mock *MockQueue
}

func NewMockQueue(ctrl *gomock.Controller) *MockQueue {
	m := &MockQueue{ctrl: ctrl}
	m.recorder = &MockQueueMockRecorder{m}
	return m
}

func (m *MockQueue) EXPECT() *MockQueueMockRecorder {
	return m.recorder
}

func (m *MockQueue) RequestBuild(projectPath string, priority buildqueue.Priority) buildqueue.Result {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RequestBuild", projectPath, priority)
	ret0, _ := ret[0].(buildqueue.Result)
	return ret0
}

func (mr *MockQueueMockRecorder) RequestBuild(projectPath, priority interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RequestBuild", reflect.TypeOf((*MockQueue)(nil).RequestBuild), projectPath, priority)
}

// MockVFS is a mock of the vfs.VFS interface.
type MockVFS struct {
	ctrl     *gomock.Controller
	recorder *MockVFSMockRecorder
}

type MockVFSMockRecorder struct {
	mock *MockVFS
}

func NewMockVFS(ctrl *gomock.Controller) *MockVFS {
	m := &MockVFS{ctrl: ctrl}
	m.recorder = &MockVFSMockRecorder{m}
	return m
}

func (m *MockVFS) EXPECT() *MockVFSMockRecorder {
	return m.recorder
}

func (m *MockVFS) OnChange(batch []vfs.Change) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OnChange", batch)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockVFSMockRecorder) OnChange(batch interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnChange", reflect.TypeOf((*MockVFS)(nil).OnChange), batch)
}

func (m *MockVFS) GetLine(path string, line int) (string, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLine", path, line)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockVFSMockRecorder) GetLine(path, line interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLine", reflect.TypeOf((*MockVFS)(nil).GetLine), path, line)
}
