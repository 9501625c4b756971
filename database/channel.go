package database

import (
	"fmt"

	"camwatch/models"

	"gorm.io/gorm"
)

func GetChannels() ([]*models.Channel, error) {
	var channels []*models.Channel
	if err := DB.Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}
	return channels, nil
}

func FindChannel(username string) (*models.Channel, error) {
	var channel models.Channel
	err := DB.
		Where(&models.Channel{Username: username}).
		First(&channel).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to find channel: %w", err)
	}
	return &channel, nil
}

func AddChannel(channel *models.Channel) error {
	err := DB.
		Where(models.Channel{Username: channel.Username}).
		FirstOrCreate(channel).
		Error
	if err != nil {
		return fmt.Errorf("failed to add channel: %w", err)
	}
	return nil
}

func SaveChannel(channel *models.Channel) error {
	err := DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(channel).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save channel: %w", err)
	}
	return nil
}

func RemoveChannel(username string) error {
	err := DB.
		Where(&models.Channel{Username: username}).
		Delete(&models.Channel{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to remove channel: %w", err)
	}
	return nil
}
