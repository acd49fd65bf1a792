package game

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	progressObject = "progress"
)

// Checkpoint 一局游戏中途的卡片进度存档
type Checkpoint struct {
	RunID   string         `yaml:"runId"`
	SavedAt time.Time      `yaml:"savedAt"`
	Ledger  LedgerSnapshot `yaml:"ledger"`
}

// EncodeCheckpoint 将账本快照编码为 YAML
func EncodeCheckpoint(runID uuid.UUID, ledger *CardProgressionLedger) ([]byte, error) {
	cp := Checkpoint{
		RunID:   runID.String(),
		SavedAt: time.Now(),
		Ledger:  ledger.Snapshot(),
	}
	data, err := yaml.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	return data, nil
}

// DecodeCheckpoint 从 YAML 解码存档
func DecodeCheckpoint(data []byte) (*Checkpoint, error) {
	var cp Checkpoint
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	if _, err := uuid.Parse(cp.RunID); err != nil {
		return nil, fmt.Errorf("checkpoint has invalid run id %q: %w", cp.RunID, err)
	}
	return &cp, nil
}

// ProgressStore 卡片进度存档管理器
//
// 使用 gdata 跨平台存储，以 RunID 作为属性名，每局游戏一个存档。
// gdataManager 为 nil 时进入降级模式：保存不报错也不落盘，加载视为没有存档。
type ProgressStore struct {
	gdataManager *gdata.Manager
}

// NewProgressStore 创建进度存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewProgressStore(gdataManager *gdata.Manager) *ProgressStore {
	return &ProgressStore{gdataManager: gdataManager}
}

// Enabled 是否可以持久化
func (s *ProgressStore) Enabled() bool {
	return s.gdataManager != nil
}

// Save 保存会话的卡片进度
func (s *ProgressStore) Save(session *Session) error {
	if s.gdataManager == nil {
		return nil
	}

	data, err := EncodeCheckpoint(session.RunID, session.Ledger)
	if err != nil {
		return err
	}

	if err := s.gdataManager.SaveObjectProp(progressObject, session.RunID.String(), data); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	log.Printf("[ProgressStore] Checkpoint saved for run %s (%d bytes)", session.RunID, len(data))
	return nil
}

// Exists 指定局是否有存档
func (s *ProgressStore) Exists(runID uuid.UUID) bool {
	if s.gdataManager == nil {
		return false
	}
	return s.gdataManager.ObjectPropExists(progressObject, runID.String())
}

// Load 将指定局的存档恢复到会话
//
// 返回：
//   - bool: 是否找到并恢复了存档
//   - error: 存档存在但读取、解码或恢复失败时返回错误
func (s *ProgressStore) Load(runID uuid.UUID, session *Session) (bool, error) {
	if !s.Exists(runID) {
		return false, nil
	}

	data, err := s.gdataManager.LoadObjectProp(progressObject, runID.String())
	if err != nil {
		return false, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	cp, err := DecodeCheckpoint(data)
	if err != nil {
		return false, err
	}

	if err := session.Ledger.Restore(cp.Ledger); err != nil {
		return false, fmt.Errorf("failed to restore ledger: %w", err)
	}
	session.RunID = runID

	log.Printf("[ProgressStore] Checkpoint loaded for run %s (saved %s)", runID, cp.SavedAt.Format(time.RFC3339))
	return true, nil
}
